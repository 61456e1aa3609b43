package controllers

import (
	"context"
	"net/http"

	"github.com/Akashx1550/TrendMart-backend/models"
	"github.com/Akashx1550/TrendMart-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	products services.ProductService
	cache    *CatalogCache
}

func NewProductController(products services.ProductService, cache *CatalogCache) *ProductController {
	return &ProductController{products: products, cache: cache}
}

func (pc *ProductController) AddProduct(c *gin.Context) {
	var req models.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	product, err := pc.products.AddProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "name": product.Name})
}

func (pc *ProductController) RemoveProduct(c *gin.Context) {
	var req models.RemoveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	name, err := pc.products.RemoveProduct(c.Request.Context(), *req.ID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "name": name})
}

func (pc *ProductController) AllProducts(c *gin.Context) {
	pc.cachedView(c, ViewAllProducts, pc.products.AllProducts)
}

func (pc *ProductController) NewCollections(c *gin.Context) {
	pc.cachedView(c, ViewNewCollections, pc.products.NewCollections)
}

func (pc *ProductController) PopularInWomen(c *gin.Context) {
	pc.cachedView(c, ViewPopularInWomen, pc.products.PopularInWomen)
}

// RelatedProducts is randomized per call and never cached.
func (pc *ProductController) RelatedProducts(c *gin.Context) {
	products, err := pc.products.RelatedProducts(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) cachedView(c *gin.Context, view string, load func(context.Context) ([]models.Product, error)) {
	ctx := c.Request.Context()
	products, version, ok := pc.cache.Get(ctx, view)
	if ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := load(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.cache.SetAsync(view, version, products)

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) invalidate(ctx context.Context) {
	if err := pc.cache.Invalidate(ctx); err != nil {
		zap.L().Error("Failed to invalidate catalog cache", zap.Error(err))
	}
}
