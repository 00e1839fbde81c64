package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fabzclean/fabzclean-api/config"
	"github.com/fabzclean/fabzclean-api/controllers"
	"github.com/fabzclean/fabzclean-api/middleware"
	"github.com/fabzclean/fabzclean-api/models"
	"github.com/fabzclean/fabzclean-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting FabzClean API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Service{},
		&models.Customer{},
		&models.Order{},
		&models.Worker{},
		&models.Track{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed label generation
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitLabelService(s3Service)

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with middleware and all route groups
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		// Customer profile routes
		customers := v1.Group("/customers", middleware.RequireCustomer(cfg))
		{
			customers.GET("/me", controllers.GetMyProfile)
			customers.PUT("/me", controllers.UpdateMyProfile)
		}

		// Service catalog: reads are public, writes are admin-gated in the handlers
		v1.GET("/services", controllers.ListServices)
		v1.GET("/services/:id", controllers.GetService)
		v1.POST("/services", middleware.RequireCustomer(cfg), controllers.CreateService)
		v1.PUT("/services/:id", middleware.RequireCustomer(cfg), controllers.UpdateService)

		// Order routes (owner-scoped)
		orders := v1.Group("/orders", middleware.RequireCustomer(cfg))
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("", controllers.ListOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PUT("/:id", controllers.UpdateOrder)
			orders.DELETE("/:id", controllers.DeleteOrder)
			orders.GET("/:id/tracks", controllers.ListOrderTracks)
		}

		// Global scan feed, admin-gated in the handler
		v1.GET("/tracks", middleware.RequireCustomer(cfg), controllers.ListRecentTracks)

		// Worker routes: registration and token rotation are admin actions,
		// scanning authenticates with the worker's own device token
		workers := v1.Group("/workers")
		{
			workers.POST("/register", middleware.RequireCustomer(cfg), controllers.RegisterWorker)
			workers.POST("/login", middleware.RequireCustomer(cfg), controllers.WorkerLogin)
			workers.POST("/scan", middleware.RequireWorker(), controllers.Scan)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "FabzClean API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
