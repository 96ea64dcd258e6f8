package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/marketplace-api/config"
	"github.com/kendall-kelly/marketplace-api/controllers"
	"github.com/kendall-kelly/marketplace-api/middleware"
	"github.com/kendall-kelly/marketplace-api/models"
	"github.com/kendall-kelly/marketplace-api/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application holds the long-lived dependencies shared by every request
type application struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB

	listings *controllers.ListingController
	messages *controllers.MessageController
	uploads  *controllers.UploadController
}

func newApplication(cfg *config.Config, logger *zap.Logger, db *gorm.DB, store services.ObjectStore) *application {
	return &application{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		listings: controllers.NewListingController(services.NewListingService(db, logger), logger),
		messages: controllers.NewMessageController(services.NewMessageService(db, logger), logger),
		uploads:  controllers.NewUploadController(services.NewImageService(store, logger), logger),
	}
}

func (a *application) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(a.logger),
		middleware.Recovery(a.logger),
		middleware.CORS(a.cfg.CORSAllowedOrigins),
		middleware.Timeout(a.cfg.RequestTimeout),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.GET("/database/status", a.databaseStatus)

		api.GET("/listings", a.listings.ListListings)
		api.GET("/listings/:id", a.listings.GetListing)
		api.POST("/listings", a.listings.CreateListing)
		api.GET("/search", a.listings.SearchListings)

		api.POST("/messages", a.messages.SendMessage)
		api.POST("/upload", a.uploads.UploadImage)

		api.GET("/categories", controllers.ListCategories)
		api.GET("/categories/:slug", controllers.GetCategory)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Marketplace API is running",
	})
}

// databaseStatus checks database connectivity and reports which tables exist
func (a *application) databaseStatus(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		a.logger.Error("Failed to get database instance", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get database instance",
			"code":  "DATABASE_ERROR",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		a.logger.Error("Database ping failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Database connection failed",
			"code":  "DATABASE_CONNECTION_ERROR",
		})
		return
	}

	migrator := a.db.WithContext(c.Request.Context()).Migrator()
	tables := []string{}
	for _, model := range models.All() {
		named, ok := model.(interface{ TableName() string })
		if ok && migrator.HasTable(model) {
			tables = append(tables, named.TableName())
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
