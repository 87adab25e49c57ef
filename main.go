package main

import (
	"log"

	v1 "github.com/adsboard-api/api/v1"
	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/config"
	"github.com/adsboard-api/database"
	"github.com/adsboard-api/middleware"
	"github.com/adsboard-api/notifications"
	"github.com/adsboard-api/repositories"
	"github.com/adsboard-api/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	adRepo := repositories.NewAdRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Initialize services
	tokens, err := services.NewTokenService(services.TokenConfig{
		Secret:           cfg.JWTSecret,
		AccessTTL:        cfg.AccessTokenTTL,
		RefreshTTL:       cfg.RefreshTokenTTL,
		PasswordResetTTL: cfg.PasswordResetTTL,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize token service: %v", err)
	}

	var notifier notifications.Notifier = notifications.NewLogNotifier()
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notifications.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("❌ Failed to connect to message broker: %v", err)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
		log.Printf("📨 Password reset notifications published to exchange %s", cfg.AMQPExchange)
	}

	engine := authz.NewEngine(nil)
	authService := services.NewAuthService(userRepo, tokens)
	frontendURL := "http://" + cfg.Host + ":3000"

	deps := v1.Dependencies{
		Auth:           authService,
		Users:          services.NewUserService(userRepo, engine),
		Ads:            services.NewAdService(adRepo, engine),
		Reviews:        services.NewReviewService(reviewRepo, adRepo, engine),
		Reset:          services.NewPasswordResetService(userRepo, tokens, notifier, frontendURL),
		CORSOrigins:    cfg.CORSOrigins,
		Metrics:        middleware.NewMetrics(prometheus.DefaultRegisterer),
		MetricsHandler: promhttp.Handler(),
	}

	if cfg.RedisURL != "" {
		rdb, err := middleware.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		deps.RateLimit = middleware.RateLimit(rdb, cfg.RateLimitPerMinute)
		log.Printf("🚦 Rate limiting enabled: %d requests per minute", cfg.RateLimitPerMinute)
	} else {
		log.Println("⚠️ REDIS_URL not set, rate limiting disabled")
	}

	router := v1.NewRouter(deps)

	// Start server
	log.Printf("🚀 Adsboard API starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
