package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Akashx1550/TrendMart-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadField is the multipart field carrying the image.
const UploadField = "product"

type UploadController struct {
	images services.ImageService
}

func NewUploadController(images services.ImageService) *UploadController {
	return &UploadController{images: images}
}

func (uc *UploadController) Upload(c *gin.Context) {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": "product image file is required"})
		return
	}

	file, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	url, err := uc.images.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	zap.L().Info("image uploaded", zap.String("image_url", url))
	c.JSON(http.StatusOK, gin.H{"success": true, "image_url": url})
}

// ServeImage streams a previously uploaded image.
func (uc *UploadController) ServeImage(c *gin.Context) {
	obj, err := uc.images.Open(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	if obj.ContentLength > 0 {
		c.Header("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, obj.Body); err != nil {
		zap.L().Warn("image stream interrupted", zap.Error(err))
	}
}
