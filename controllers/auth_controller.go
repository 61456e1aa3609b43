package controllers

import (
	"errors"
	"net/http"

	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"
	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/Akashx1550/TrendMart-backend/services"

	"github.com/gin-gonic/gin"
)

// Login failures are reported with a 200 status and these messages.
const (
	msgWrongEmail    = "Wrong email Id"
	msgWrongPassword = "Wrong password"
)

type AuthController struct {
	auth services.AuthService
}

func NewAuthController(auth services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	token, err := ac.auth.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	token, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusOK, gin.H{"success": false, "errors": msgWrongEmail})
	case errors.Is(err, apperrors.ErrWrongPassword):
		c.JSON(http.StatusOK, gin.H{"success": false, "errors": msgWrongPassword})
	default:
		respondError(c, err)
	}
}
