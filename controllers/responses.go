package controllers

import (
	"errors"
	"net/http"

	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"
	"github.com/Akashx1550/TrendMart-backend/common/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes err as `{success:false, errors:<message>}`. Application
// errors keep their status; anything else is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"success": false, "errors": appErr.Message})
		return
	}

	logger.For(c, zap.L()).Error("Service error", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "errors": apperrors.ErrInternalServer.Message})
}

func respondValidation(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": validationMessage(err)})
}
