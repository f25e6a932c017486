package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/api/handlers"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/api/middleware"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/storage"

	"log"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, taskClient handlers.ITaskEnqueuer, configSvc services.IConfigService) *gin.Engine {
	// Initialize services needed by API handlers
	userService := services.NewUserService(db, rdb, cfg)
	storeService := services.NewStoreService(db)
	reservationService := services.NewReservationService(db, cfg)
	marketplaceService := services.NewMarketplaceService()
	freelanceService := services.NewFreelanceService()

	s3StorageService, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize S3 storage for API: %v", err)
	}
	verificationService := services.NewVerificationService(db, s3StorageService, cfg)

	r := gin.Default()

	// Global middleware (order matters)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	restAuthHandler := handlers.NewRestAuthHandler(cfg, userService, taskClient)
	restStoreHandler := handlers.NewRestStoreHandler(storeService)
	restReservationHandler := handlers.NewRestReservationHandler(reservationService, userService, taskClient)
	restVerificationHandler := handlers.NewRestVerificationHandler(verificationService, taskClient)
	restMarketplaceHandler := handlers.NewRestMarketplaceHandler(marketplaceService)
	restFreelanceHandler := handlers.NewRestFreelanceHandler(freelanceService)
	restConfigHandler := handlers.NewRestConfigHandler(configSvc)

	v1 := r.Group("/v1")
	{
		// Public routes
		v1.GET("/stores", restStoreHandler.GetStores)
		v1.GET("/marketplace/listings", restMarketplaceHandler.GetListings)
		v1.GET("/freelance/freelancers", restFreelanceHandler.GetFreelancers)
		v1.GET("/config/map", restConfigHandler.GetMapToken)

		v1.POST("/auth/signup", restAuthHandler.SignUp)
		v1.POST("/auth/login", restAuthHandler.Login)
		v1.POST("/auth/oauth/:provider", restAuthHandler.OAuthSignIn)
		v1.POST("/auth/forgot-password", restAuthHandler.ForgotPassword)
		v1.POST("/auth/reset-password", restAuthHandler.ResetPassword)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated routes
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.POST("/reservations/search", restReservationHandler.SearchOffers)
			authRequired.POST("/reservations", restReservationHandler.CreateReservation)
			authRequired.GET("/reservations", restReservationHandler.ListReservations)

			authRequired.POST("/verifications", restVerificationHandler.SubmitVerification)
			authRequired.GET("/verifications/latest", restVerificationHandler.GetLatestVerification)
		}

		// Admin routes
		adminRequired := v1.Group("/admin")
		adminRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			adminRequired.PUT("/config/map", restConfigHandler.SetMapToken)
		}
	}

	return r
}
