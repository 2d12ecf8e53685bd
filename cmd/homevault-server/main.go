package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"homevault/pkg/homevault/access"
	"homevault/pkg/homevault/admin"
	"homevault/pkg/homevault/auth"
	"homevault/pkg/homevault/bookmarks"
	"homevault/pkg/homevault/config"
	"homevault/pkg/homevault/database"
	"homevault/pkg/homevault/export"
	"homevault/pkg/homevault/files"
	"homevault/pkg/homevault/logging"
	"homevault/pkg/homevault/memos"
	"homevault/pkg/homevault/middleware"
	"homevault/pkg/homevault/models"
	"homevault/pkg/homevault/notes"
	"homevault/pkg/homevault/photos"
	"homevault/pkg/homevault/resumes"
	"homevault/pkg/homevault/shares"
	"homevault/pkg/homevault/tags"
	"homevault/pkg/homevault/vault"

	_ "homevault/api/swagger"
)

// @title HomeVault API
// @version 1.0
// @description Personal vault for notes, bookmarks, credentials, files and photos, with shareable capability links.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Log)

	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}
	logger.Info("database migrations completed")

	if err := ensureAdminExists(db, logger); err != nil {
		logger.WithError(err).Fatal("failed to ensure admin user exists")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))
	r.Use(middleware.Metrics())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "homevault",
			})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(db, issuer)
		authHandler.RegisterRoutes(api.Group("/auth"))

		authRequired := auth.Middleware(issuer)

		// Owner-scoped content routes
		notes.NewHandler(db).RegisterRoutes(api.Group("", authRequired))
		tags.NewHandler(db).RegisterRoutes(api.Group("", authRequired))
		bookmarks.NewHandler(db).RegisterRoutes(api.Group("", authRequired))
		vault.NewHandler(db).RegisterRoutes(api.Group("", authRequired))
		memos.NewHandler(db).RegisterRoutes(api.Group("", authRequired))
		files.NewHandler(db).RegisterRoutes(api.Group("", authRequired))
		photos.NewHandler(db).RegisterRoutes(api.Group("", authRequired))
		resumes.NewHandler(db).RegisterRoutes(api.Group("", authRequired))

		// Share link management
		shares.NewHandler(db, cfg.BaseURL).RegisterRoutes(api.Group("", authRequired))

		// Bookmark import/export
		export.NewHandler(db).RegisterRoutes(api.Group("", authRequired))

		// Admin routes (admin role required)
		adminGroup := api.Group("/admin")
		adminGroup.Use(authRequired, auth.RequireAdmin())
		admin.NewHandler(db).RegisterRoutes(adminGroup)
	}

	// Public share routes (must be registered LAST to avoid conflicts)
	accessHandler := access.NewHandler(db, logger)
	accessHandler.RegisterRoutes(r)

	logger.WithField("port", cfg.Port).Info("starting homevault server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

// ensureAdminExists creates a default admin user if no admin exists.
func ensureAdminExists(db *gorm.DB, logger *logrus.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Where("system_role = ?", models.SystemRoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hashedPassword, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	adminUser := models.User{
		Email:        "admin@homevault.local",
		Name:         "Admin",
		PasswordHash: hashedPassword,
		SystemRole:   models.SystemRoleAdmin,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	logger.Info("created default admin user: admin@homevault.local (password: changeme)")
	return nil
}
