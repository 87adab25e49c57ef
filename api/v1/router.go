package v1

import (
	"net/http"
	"time"

	"github.com/adsboard-api/middleware"
	"github.com/adsboard-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies wires the services and optional infrastructure into the router
type Dependencies struct {
	Auth    *services.AuthService
	Users   *services.UserService
	Ads     *services.AdService
	Reviews *services.ReviewService
	Reset   *services.PasswordResetService

	CORSOrigins []string
	// RateLimit guards credential endpoints; nil disables limiting
	RateLimit gin.HandlerFunc
	// Metrics and MetricsHandler are both optional
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(d Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	if d.Metrics != nil {
		router.Use(d.Metrics.Handler())
	}

	// CORS configuration
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", HealthCheck)
	if d.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(d.MetricsHandler))
	}

	api := router.Group("/api")
	api.Use(middleware.Authenticate(d.Auth))
	RegisterRoutes(api, d)

	return router
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.RouterGroup, d Dependencies) {
	limit := d.RateLimit
	if limit == nil {
		limit = middleware.RateLimit(nil, 0)
	}

	NewAuthController(d.Auth).RegisterRoutes(router, limit)
	NewUserController(d.Auth, d.Users, d.Reset).RegisterRoutes(router, limit)
	NewAdController(d.Ads).RegisterRoutes(router)
	NewReviewController(d.Reviews).RegisterRoutes(router)
}
