package main

import (
	"log"
	"strings"
	"time"

	"cardapio/internal/config"
	"cardapio/internal/database"
	"cardapio/internal/handlers"
	"cardapio/internal/middlewares"
	"cardapio/internal/rabbitmq"
	"cardapio/internal/redis"
	"cardapio/internal/repository"
	"cardapio/internal/services"
	"cardapio/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL, time.Duration(cfg.CartTTL)*time.Second)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize RabbitMQ (optional; skipped when AMQP_URL is unset)
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		mq, err := rabbitmq.NewPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		if err := mq.Setup(); err != nil {
			log.Fatal("Failed to set up RabbitMQ topology:", err)
		}
		defer mq.Close()
		publisher = mq
	}

	// Initialize WhatsApp client
	whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	additionalRepo := repository.NewAdditionalRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	catalogService := services.NewCatalogService(productRepo, additionalRepo)
	cartService := services.NewCartService(redisClient, productRepo, additionalRepo)
	whatsappService := services.NewWhatsAppService(whatsappClient, settingsRepo, cfg.WhatsAppNumber)
	checkoutService := services.NewCheckoutService(redisClient, orderRepo, settingsRepo, whatsappService, publisher)
	orderService := services.NewOrderService(orderRepo, publisher)
	customerService := services.NewCustomerService(
		customerRepo,
		redisClient,
		cfg.JWTSecret,
		time.Duration(cfg.TokenTTL)*time.Second,
		time.Duration(cfg.CustomerCacheTTL)*time.Second,
	)
	reportService := services.NewReportService(orderRepo, customerRepo)

	// Initialize handlers
	menuHandler := handlers.NewMenuHandler(catalogService, settingsRepo)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	customerHandler := handlers.NewCustomerHandler(customerService, orderService)
	adminHandler := handlers.NewAdminHandler(catalogService, orderService, reportService, settingsRepo)

	// Setup routes
	router := gin.Default()
	router.Use(middlewares.CORSMiddleware(strings.Split(cfg.AllowedOrigins, ",")))
	router.Use(middlewares.PrometheusMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Public catalog and store info
		api.GET("/products", menuHandler.ListProducts)
		api.GET("/products/:id", menuHandler.GetProduct)
		api.GET("/products/:id/additionals", menuHandler.ProductAdditionals)
		api.GET("/additionals", menuHandler.ListAdditionals)
		api.GET("/settings/store", menuHandler.StoreInfo)

		// Session cart
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart/items", cartHandler.AddItem)
		api.POST("/cart/items/:id/quick-add", cartHandler.QuickAdd)
		api.PUT("/cart/items", cartHandler.SetQuantity)
		api.DELETE("/cart/items", cartHandler.RemoveItem)
		api.DELETE("/cart", cartHandler.ClearCart)
		api.POST("/checkout", middlewares.OptionalAuth(cfg.JWTSecret), cartHandler.Checkout)

		// Order tracking
		api.GET("/orders/:id", orderHandler.GetOrder)

		// Customer accounts
		api.POST("/auth/register", customerHandler.Register)
		api.POST("/auth/login", customerHandler.Login)

		me := api.Group("/me", middlewares.AuthMiddleware(cfg.JWTSecret))
		{
			me.GET("", customerHandler.GetProfile)
			me.PUT("", customerHandler.UpdateProfile)
			me.POST("/favorites/:productId", customerHandler.ToggleFavorite)
			me.GET("/orders", customerHandler.GetOrders)
		}

		admin := api.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret), middlewares.AdminOnly())
		{
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.POST("/additionals", adminHandler.CreateAdditional)
			admin.PUT("/additionals/:id", adminHandler.UpdateAdditional)
			admin.DELETE("/additionals/:id", adminHandler.DeleteAdditional)

			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/comandas/:number/orders", orderHandler.GetComandaOrders)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.GET("/reports/summary", adminHandler.ReportsSummary)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
