package routes

import (
	"net/http"

	"github.com/Akashx1550/TrendMart-backend/controllers"
	"github.com/Akashx1550/TrendMart-backend/middleware"

	"github.com/gin-gonic/gin"
)

const serviceName = "storefront"

// Handlers bundles everything the storefront routes are wired to.
type Handlers struct {
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Product  *controllers.ProductController
	Upload   *controllers.UploadController
	Verifier middleware.TokenVerifier
	// AuthLimiter throttles signup and login. Optional.
	AuthLimiter gin.HandlerFunc
	// Metrics serves /metrics. Optional.
	Metrics http.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Storefront API is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	// Catalog
	r.POST("/addproduct", h.Product.AddProduct)
	r.POST("/removeproduct", h.Product.RemoveProduct)
	r.GET("/allproducts", h.Product.AllProducts)
	r.GET("/newcollections", h.Product.NewCollections)
	r.GET("/popularinwomen", h.Product.PopularInWomen)
	r.GET("/relatedproducts/:category", h.Product.RelatedProducts)

	// Images
	r.POST("/upload", h.Upload.Upload)
	r.GET("/images/:name", h.Upload.ServeImage)

	// Accounts
	accounts := r.Group("/")
	if h.AuthLimiter != nil {
		accounts.Use(h.AuthLimiter)
	}
	{
		accounts.POST("/signup", h.Auth.Signup)
		accounts.POST("/login", h.Auth.Login)
	}

	// Cart (requires auth-token)
	cart := r.Group("/")
	cart.Use(middleware.AuthMiddleware(h.Verifier))
	{
		cart.POST("/addtocart", h.Cart.AddToCart)
		cart.POST("/removefromcart", h.Cart.RemoveFromCart)
		cart.POST("/getcart", h.Cart.GetCart)
	}
}
