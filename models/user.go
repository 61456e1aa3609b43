package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartSlots is the fixed number of cart positions every user owns.
const CartSlots = 300

// CartData maps a slot index ("0".."299") to the quantity held in it.
type CartData map[string]int

// NewCartData returns a cart with every slot present and zeroed.
func NewCartData() CartData {
	cart := make(CartData, CartSlots)
	for i := 0; i < CartSlots; i++ {
		cart[SlotKey(i)] = 0
	}
	return cart
}

// SlotKey is the cartData field name for slot i.
func SlotKey(i int) string {
	return strconv.Itoa(i)
}

// ValidSlot reports whether i addresses a cart slot.
func ValidSlot(i int) bool {
	return i >= 0 && i < CartSlots
}

type User struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	CartData CartData           `json:"cartData" bson:"cartData"`
	Date     time.Time          `json:"date" bson:"date"`
}
