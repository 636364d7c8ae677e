// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/config"
	"github.com/stagefolio/stagefolio-backend/internal/handlers"
	"github.com/stagefolio/stagefolio-backend/internal/middleware"
	"github.com/stagefolio/stagefolio-backend/internal/services"
)

// Initialize wires services, handlers and middleware into a gin engine.
func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Services
	authzService := services.NewAuthorizationService(db)
	notificationService := services.NewNotificationService(db, cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, cfg)
	profileService := services.NewProfileService(db, authzService)
	portfolioService := services.NewPortfolioService(db, authzService, storageService)
	claimService := services.NewClaimService(db, authzService, notificationService)
	importService := services.NewImportService(db, authzService)
	extractionService := services.NewExtractionService(cfg.Extraction)
	adminService := services.NewAdminService(db, authzService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, storageService)
	claimHandler := handlers.NewClaimHandler(claimService)
	importHandler := handlers.NewImportHandler(importService)
	extractionHandler := handlers.NewExtractionHandler(extractionService)
	adminHandler := handlers.NewAdminHandler(adminService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Locally stored uploads are only served in development; production
	// serves media from S3/CloudFront.
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
			auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
			auth.POST("/refresh", middleware.AuthRateLimit(), authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("", profileHandler.SearchProfiles)
			profiles.GET("/:slug", profileHandler.GetProfile)

			authed := profiles.Group("", middleware.AuthRequired(), middleware.AuditLogMiddleware(db))
			{
				authed.POST("", profileHandler.CreateProfile)
				authed.PUT("/:slug", profileHandler.UpdateProfile)
				authed.DELETE("/:slug", profileHandler.DeleteProfile)

				authed.POST("/:slug/media", portfolioHandler.AddMedia)
				authed.POST("/:slug/media/upload", middleware.UploadRateLimit(), portfolioHandler.UploadMediaFile)
				authed.POST("/:slug/choreography", portfolioHandler.AddChoreography)
				authed.POST("/:slug/awards", portfolioHandler.AddAward)
				authed.POST("/:slug/workshops", portfolioHandler.AddWorkshop)
				authed.DELETE("/:slug/sections/:section/:item_id", portfolioHandler.RemoveSectionItem)
			}
		}

		claims := v1.Group("/claims", middleware.AuthRequired(), middleware.AuditLogMiddleware(db))
		{
			claims.POST("", claimHandler.SubmitClaim)
			claims.GET("", claimHandler.ListClaims)
			claims.GET("/:id", claimHandler.GetClaim)
			claims.POST("/:id/approve", middleware.AdminRequired(), claimHandler.ApproveClaim)
			claims.POST("/:id/reject", middleware.AdminRequired(), claimHandler.RejectClaim)
		}

		extraction := v1.Group("/extraction", middleware.AuthRequired())
		{
			extraction.POST("/profile", extractionHandler.ExtractProfile)
		}

		admin := v1.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLogMiddleware(db))
		{
			admin.GET("/dashboard", adminHandler.GetDashboardStats)
			admin.GET("/users", adminHandler.GetUsers)
			admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
			admin.GET("/notifications", adminHandler.GetNotifications)
			admin.PUT("/notifications/:id/read", adminHandler.MarkNotificationRead)
			admin.POST("/import/profiles", middleware.UploadRateLimit(), importHandler.ImportProfiles)
			admin.PUT("/profiles/:slug/verification", profileHandler.SetVerification)
		}
	}

	return r, nil
}
