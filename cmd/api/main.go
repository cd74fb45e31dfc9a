package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/ai"
	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           Fintrack API
// @version         1.0
// @description     Fintrack is a personal finance tracker with bulk spreadsheet imports, aggregated reports, and AI-assisted cashflow analysis.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// The Gemini client is optional: without an API key the analysis
	// endpoints return 503 and everything else works normally.
	var generator services.TextGenerator
	if appConfig.GeminiAPIKey != "" {
		client, err := ai.NewClient(context.Background(), appConfig.GeminiAPIKey, appConfig.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create gemini client: %w", err)
		}
		generator = client
	} else {
		log.Warn("GEMINI_API_KEY not set, AI analysis endpoints disabled")
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	importService := services.NewImportService(db, services.DefaultImportConfig())
	reportService := services.NewReportService(db, nil)
	analysisService := services.NewAnalysisService(db, reportService, generator)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, importService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Category directory routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:code", categoryHandler.GetCategory)
	categories.PUT("/:code", categoryHandler.UpdateCategory)
	categories.DELETE("/:code", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("/import", transactionHandler.ImportTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/categories", reportHandler.GetCategoryReport)
	reports.GET("/monthly", reportHandler.GetMonthlyChart)
	reports.GET("/dashboard", reportHandler.GetDashboardSummary)
	reports.GET("/most-expense", reportHandler.GetMostExpenseCategories)
	reports.GET("/income-categories", reportHandler.GetIncomeCategories)
	reports.GET("/expense-categories", reportHandler.GetExpenseCategories)
	reports.GET("/cashflow", reportHandler.GetCashflowData)

	// AI analysis routes
	aiRoutes := protected.Group("/ai")
	aiRoutes.POST("/analyze-financial", analysisHandler.AnalyzeFinancial)
	aiRoutes.GET("/latest-analysis", analysisHandler.GetLatestAnalysis)

	log.Infof("Starting Fintrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
