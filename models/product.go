package models

import "time"

// Product is a catalog entry. ID is the sequential public identifier, not
// the store's own document key.
type Product struct {
	ID        int64     `json:"id" bson:"id" dynamodbav:"id"`
	Name      string    `json:"name" bson:"name" dynamodbav:"name"`
	Image     string    `json:"image" bson:"image" dynamodbav:"image"`
	Category  string    `json:"category" bson:"category" dynamodbav:"category"`
	NewPrice  float64   `json:"new_price" bson:"new_price" dynamodbav:"new_price"`
	OldPrice  float64   `json:"old_price" bson:"old_price" dynamodbav:"old_price"`
	Date      time.Time `json:"date" bson:"date" dynamodbav:"date"`
	Available bool      `json:"available" bson:"available" dynamodbav:"available"`
}
