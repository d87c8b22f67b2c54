package main

import (
	"context"
	"log"
	"time"

	"makemeshort/internal/cache"
	"makemeshort/internal/config"
	"makemeshort/internal/controllers"
	"makemeshort/internal/database"
	"makemeshort/internal/entities"
	"makemeshort/internal/jwt"
	"makemeshort/internal/middleware"
	"makemeshort/internal/repository"
	"makemeshort/internal/service"
	"makemeshort/internal/visitor"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize repositories
	urlRepo := repository.NewURLRepository(db)
	userRepo := repository.NewUserRepository(db)
	qrRepo := repository.NewQRCodeRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)

	// Initialize JWT service and visitor hasher
	jwtService := jwt.NewJWTService(cfg.JWTSecret)
	hasher := visitor.NewHasher(cfg.VisitorSalt)

	// Initialize services
	urlService := service.NewURLService(urlRepo, qrRepo, visitorRepo, cacheClient, hasher, cfg.Host)
	qrService := service.NewQRService(urlRepo, qrRepo, cfg.Host)
	authService := service.NewAuthService(userRepo, jwtService, cfg.AllowPublicSignup, cfg.SuperuserUsername, cfg.SuperuserPassword)
	userService := service.NewUserService(userRepo)

	// Initialize controllers
	shortenerController := controllers.NewShortenerController(urlService)
	qrcodeController := controllers.NewQRCodeController(qrService)
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	healthController := controllers.NewHealthController(db)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type", "Accept"},
		MaxAge:       time.Hour,
	}))

	// Public routes: redirect, auth, health check
	router.GET("/r/:code", shortenerController.RedirectToURL)

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/signup", authController.Signup)
		auth.POST("/init", authController.CreateSuperuser)
	}

	router.GET("/api/health/check", healthController.Check)

	// Protected routes - require JWT authentication
	protected := router.Group("/api")
	protected.Use(middleware.AuthRequired(jwtService))
	{
		protected.POST("/shorten", shortenerController.CreateShortURL)
		protected.GET("/urls", shortenerController.ListURLs)
		protected.DELETE("/urls/:code", shortenerController.DeleteURL)
		protected.GET("/analytics/:code", shortenerController.GetAnalytics)

		protected.GET("/qr", qrcodeController.List)
		protected.POST("/qr", qrcodeController.GenerateDirect)
		protected.GET("/qr/:code/regenerate", qrcodeController.Regenerate)
		protected.GET("/qr/:code/info", qrcodeController.GetCached)

		users := protected.Group("/users")
		{
			users.GET("", middleware.RequireRoles(entities.RoleUserViewer), userController.List)
			users.POST("", middleware.RequireRoles(entities.RoleUserManager), userController.Create)
			users.GET("/:user_id", middleware.RequireRoles(entities.RoleUserViewer), userController.Get)
			users.PUT("/:user_id", middleware.RequireRoles(entities.RoleUserManager), userController.Edit)
			users.DELETE("/:user_id", middleware.RequireRoles(entities.RoleUserManager), userController.Delete)

			users.GET("/:user_id/urls", middleware.RequireOwnership("user_id"), shortenerController.ListUserURLs)
			users.GET("/:user_id/qr", middleware.RequireOwnership("user_id"), qrcodeController.ListUserQRCodes)
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
