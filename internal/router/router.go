// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/koushiks/supplements-backend/internal/config"
	"github.com/koushiks/supplements-backend/internal/handlers"
	"github.com/koushiks/supplements-backend/internal/middleware"
	"github.com/koushiks/supplements-backend/internal/services"
	"github.com/koushiks/supplements-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	gateway := services.NewRazorpayGateway(cfg)

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db, cfg, gateway)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "healthy",
				"version": "1.0.0",
			})
		})

		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Product catalog routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)

			products.POST("/:id/reviews", middleware.AuthRequired(), productHandler.SubmitReview)

			// Admin catalog management
			admin := products.Group("")
			admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				admin.POST("", productHandler.CreateProduct)
				admin.PUT("/:id", productHandler.UpdateProduct)
				admin.DELETE("/:id", productHandler.DeleteProduct)
				admin.POST("/:id/images", productHandler.UploadImages)
			}
		}

		// Payment routes
		payments := api.Group("/payment")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/orders", paymentHandler.CreatePaymentOrder)
			payments.POST("/verify", paymentHandler.VerifyPayment)
		}

		// Order routes
		orders := api.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("/mine", orderHandler.GetMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)

			orders.GET("", middleware.AdminRequired(), orderHandler.GetOrders)
			orders.PUT("/:id/deliver", middleware.AdminRequired(), orderHandler.MarkDelivered)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
