// internal/router/router.go
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fastpurchase/backend/internal/cache"
	"github.com/fastpurchase/backend/internal/config"
	"github.com/fastpurchase/backend/internal/events"
	"github.com/fastpurchase/backend/internal/handlers"
	"github.com/fastpurchase/backend/internal/middleware"
	"github.com/fastpurchase/backend/internal/services"
	"github.com/fastpurchase/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, store *cache.Cache, producer *events.Producer) (*gin.Engine, error) {
	// Initialize services
	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, producer)
	orderService := services.NewOrderService(db, producer)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService, store)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	cacheTTL := time.Duration(cfg.Cache.TTL) * time.Second

	// Health check
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, "Fast Purchase API is running", gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Authentication routes
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Product routes
	products := r.Group("/products")
	{
		products.GET("", middleware.ReadRateLimit(), middleware.CacheResponse(store, cacheTTL), productHandler.GetProducts)
		products.GET("/:id", middleware.ReadRateLimit(), middleware.CacheResponse(store, cacheTTL), productHandler.GetProduct)

		// Admin-only catalog mutation
		admin := products.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.CreateRateLimit())
		{
			admin.POST("", productHandler.CreateProduct)
			admin.POST("/images", productHandler.UploadProductImages)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	// Order routes
	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.POST("", middleware.OrderRateLimit(), orderHandler.PlaceOrder)
		orders.GET("", middleware.ReadRateLimit(), orderHandler.GetOrderHistory)
	}

	// 404 handler
	r.NoRoute(func(c *gin.Context) {
		utils.NotFoundResponse(c, "Route not found",
			[]string{"Cannot " + c.Request.Method + " " + c.Request.URL.Path})
	})

	return r, nil
}
