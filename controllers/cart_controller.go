package controllers

import (
	"net/http"

	"github.com/Akashx1550/TrendMart-backend/middleware"
	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/Akashx1550/TrendMart-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	cart services.CartService
}

func NewCartController(cart services.CartService) *CartController {
	return &CartController{cart: cart}
}

// AddToCart increments one slot of the caller's cart.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, item, ok := cc.bindItem(c)
	if !ok {
		return
	}
	if err := cc.cart.AddItem(c.Request.Context(), userID, item); err != nil {
		respondError(c, err)
		return
	}
	zap.L().Debug("cart item added", zap.String("user_id", userID), zap.Int("item_id", item))
	c.String(http.StatusOK, "Added")
}

// RemoveFromCart decrements one slot, never below zero.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	userID, item, ok := cc.bindItem(c)
	if !ok {
		return
	}
	if err := cc.cart.RemoveItem(c.Request.Context(), userID, item); err != nil {
		respondError(c, err)
		return
	}
	zap.L().Debug("cart item removed", zap.String("user_id", userID), zap.Int("item_id", item))
	c.String(http.StatusOK, "removed")
}

func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "Please authenticate using a valid token"})
		return
	}
	cart, err := cc.cart.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) bindItem(c *gin.Context) (string, int, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "Please authenticate using a valid token"})
		return "", 0, false
	}
	var req models.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return "", 0, false
	}
	return userID, *req.ItemID, true
}
