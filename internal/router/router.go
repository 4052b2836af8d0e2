// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/cache"
	"github.com/chaintrace/backend/internal/config"
	"github.com/chaintrace/backend/internal/handlers"
	"github.com/chaintrace/backend/internal/middleware"
	"github.com/chaintrace/backend/internal/services"
	"github.com/chaintrace/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, codes *cache.ScanCodeCache) *gin.Engine {
	// Initialize services
	registryService := services.NewRegistryService(db)
	ledgerService := services.NewLedgerService(db)
	productService := services.NewProductService(db, registryService, ledgerService, codes)
	transitionService := services.NewTransitionService(db, ledgerService)
	trackingService := services.NewTrackingService(db, registryService, ledgerService)
	verificationService := services.NewVerificationService(productService, ledgerService)
	authService := services.NewAuthService(db, registryService, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, registryService)
	participantHandler := handlers.NewParticipantHandler(registryService)
	productHandler := handlers.NewProductHandler(productService, transitionService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Session routes
		auth := v1.Group("/auth")
		{
			auth.POST("/session", middleware.SessionRateLimit(), authHandler.CreateSession)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Registry administration
		registry := v1.Group("/registry")
		{
			registry.GET("/owner", participantHandler.GetOwner)
			registry.GET("/participants", participantHandler.ListAddresses)
			registry.POST("/transfer-ownership", middleware.AuthRequired(), participantHandler.TransferOwnership)
		}

		// Participant routes
		participants := v1.Group("/participants")
		{
			participants.GET("", participantHandler.List)
			participants.GET("/:address", participantHandler.Get)
			participants.POST("", middleware.AuthRequired(), participantHandler.Register)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/scan/:code", productHandler.ResolveScanCode)
			products.GET("/:id", productHandler.Get)
			products.GET("/:id/history", trackingHandler.History)
			products.GET("/:id/verify", verificationHandler.Verify)
			products.GET("/:id/ledger", verificationHandler.LedgerEvents)
			products.GET("/:id/ledger/verify", verificationHandler.VerifyLedger)

			products.POST("", middleware.AuthRequired(), productHandler.Create)
			products.POST("/:id/advance", middleware.AuthRequired(), productHandler.Advance)
		}
	}

	return r
}
