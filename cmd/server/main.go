package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"invest_backoffice/internal/api"        // Custom package for API handlers
	"invest_backoffice/internal/config"     // Custom package for configuration
	"invest_backoffice/internal/mail"       // Custom package for outbound mail
	"invest_backoffice/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Setup mail transport from explicit config; the notifier owns the
	// sender address so handlers never read ambient process state
	smtpSender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost, // SMTP server host
		Port:     cfg.SMTPPort, // SMTP server port
		Username: cfg.SMTPUser, // SMTP username
		Password: cfg.SMTPPass, // SMTP password
	})
	notifier := mail.NewNotifier(smtpSender, cfg.MailFrom)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/user", api.RegisterHandler(db))            // Registration endpoint
	r.GET("/user", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Admin withdrawal routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/withdrawals", api.ListWithdrawalsHandler(db, redisClient))                          // List withdrawals endpoint
	adminGroup.PATCH("/withdrawals/:id", api.UpdateWithdrawalStatusHandler(db, redisClient, notifier))   // Status transition endpoint
	adminGroup.GET("/withdrawals/stats", api.WithdrawalStatsHandler(db, redisClient))                    // Statistics endpoint

	// Internal routes called by the platform's ROI accrual scheduler
	internalGroup := r.Group("/internal")
	internalGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	internalGroup.POST("/roi-notifications", api.NotifyROIHandler(notifier)) // ROI credit email endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
