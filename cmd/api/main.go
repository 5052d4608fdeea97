package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Johnskie78/ccsa/internal/admin"
	"github.com/Johnskie78/ccsa/internal/attendance"
	"github.com/Johnskie78/ccsa/internal/auth"
	"github.com/Johnskie78/ccsa/internal/cloudinary"
	"github.com/Johnskie78/ccsa/internal/config"
	"github.com/Johnskie78/ccsa/internal/handler"
	"github.com/Johnskie78/ccsa/internal/httpmiddleware"
	"github.com/Johnskie78/ccsa/internal/store"
	"github.com/Johnskie78/ccsa/internal/student"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)
	loc := cfg.Location()

	students := student.NewRepository(db.Client)
	records := attendance.NewRepository(db.Client)
	admins := admin.NewRepository(db.Client)

	if err := admins.EnsureDefaultAdmin(context.Background(), cfg.DefaultAdminPassword); err != nil {
		log.Printf("warning: default admin bootstrap failed: %v", err)
	}

	scans := attendance.NewService(
		records,
		handler.Directory{Repo: students},
		redisClient,
		attendance.NewRecentScans(10),
		loc,
		cfg.ScanCooldown,
		cfg.ScanLockTTL,
	)

	// Cloudinary client (nil when not configured)
	var cdnClient *cloudinary.Client
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cdnClient = cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		log.Println("Cloudinary configured:", cfg.CloudinaryCloudName)
	} else {
		log.Println("Cloudinary not configured, photo uploads disabled")
	}

	h := handler.New(cfg, loc, students, records, admins, scans, cdnClient)

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Custom logger
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	// CORS middleware
	r.Use(corsMiddleware())

	// Security headers
	r.Use(securityHeaders())

	// Rate limiting
	r.Use(httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Healthy(c.Request.Context())
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh", h.Refresh)
	r.POST("/api/auth/logout", h.Logout)

	api := r.Group("/api", auth.Require(cfg.JWTSigningKey, cfg.JWTIssuer))
	{
		api.GET("/auth/user", h.CurrentUser)

		api.POST("/scan", h.Scan)
		api.GET("/scan/recent", h.RecentScans)
		api.GET("/scan/student/:studentId", h.GetStudentByStudentID)

		api.GET("/students", h.ListStudents)
		api.GET("/students/:id", h.GetStudent)
		api.GET("/students/:id/qrcode", h.StudentQRCode)

		api.GET("/records", h.ListRecords)
		api.GET("/records/:id", h.GetRecord)

		api.GET("/reports/summary", h.DaySummaries)
		api.GET("/reports/daily", h.DailyReport)
		api.GET("/reports/export", h.ExportRecords)
	}

	adminAPI := api.Group("", auth.RequireRole(string(admin.RoleAdmin)))
	{
		adminAPI.POST("/students", h.CreateStudent)
		adminAPI.PUT("/students/:id", h.UpdateStudent)
		adminAPI.DELETE("/students/:id", h.DeleteStudent)
		adminAPI.POST("/students/:id/photo", h.UploadStudentPhoto)

		adminAPI.POST("/records", h.CreateRecord)
		adminAPI.PUT("/records/:id", h.UpdateRecord)
		adminAPI.DELETE("/records/:id", h.DeleteRecord)

		adminAPI.GET("/users", h.ListUsers)
		adminAPI.POST("/users", h.CreateUser)
		adminAPI.GET("/users/:id", h.GetUser)
		adminAPI.PUT("/users/:id", h.UpdateUser)
		adminAPI.DELETE("/users/:id", h.DeleteUser)
	}

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
