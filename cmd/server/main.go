package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"figure-forge-backend/internal/config"
	"figure-forge-backend/internal/database"
	"figure-forge-backend/internal/handlers"
	"figure-forge-backend/internal/middleware"
	"figure-forge-backend/internal/services"
	"figure-forge-backend/internal/supabase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Supabase clients
	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient, err := supabase.NewRealtimeClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize realtime client: %v", err)
	}

	// Create database client for direct queries
	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	// Run migrations
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	// Initialize services
	intakeService := services.NewIntakeService(storageClient, dbClient)
	workflowService := services.NewOrderWorkflowService(storageClient, dbClient, realtimeClient)
	publicationService := services.NewPublicationService(storageClient, dbClient, dbClient, realtimeClient)

	// Initialize handlers
	customOrdersHandler := handlers.NewCustomOrdersHandler(intakeService, workflowService, cfg)
	adminOrdersHandler := handlers.NewAdminOrdersHandler(workflowService, publicationService)
	productsHandler := handlers.NewProductsHandler(dbClient)

	// Setup router
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Custom order routes (requester)
	api.POST("/custom-orders", customOrdersHandler.Submit)
	api.GET("/custom-orders", customOrdersHandler.List)
	api.GET("/custom-orders/:order_id", customOrdersHandler.Get)
	api.GET("/custom-orders/:order_id/images", customOrdersHandler.Images)

	// Catalog routes
	api.GET("/products", productsHandler.List)
	api.GET("/products/:product_id", productsHandler.Get)
	api.GET("/categories", productsHandler.ListCategories)

	// Operator routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/orders", adminOrdersHandler.List)
	admin.POST("/orders/:order_id/quote", adminOrdersHandler.ProvideQuote)
	admin.PUT("/orders/:order_id/status", adminOrdersHandler.UpdateStatus)
	admin.POST("/orders/:order_id/completed-images", adminOrdersHandler.CompleteWithImages)
	admin.POST("/orders/:order_id/publish", adminOrdersHandler.Publish)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
