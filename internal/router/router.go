package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/chefcito/backend/internal/api"
	"github.com/pageza/chefcito/backend/internal/middleware"
	"github.com/pageza/chefcito/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are wired to
type Dependencies struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Recommender service.IRecommenderService
	Corpus      service.ICorpusService
	// RateLimitPerMinute <= 0 or a nil Redis disables rate limiting
	RateLimitPerMinute int
	AllowedOrigins     []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.PrometheusMetrics(),
		middleware.CORS(deps.AllowedOrigins...),
	)

	health := api.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)
	router.GET("/welcome", api.Welcome)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var limiter *middleware.RateLimiter
	if deps.Redis != nil && deps.RateLimitPerMinute > 0 {
		limiter = middleware.NewRecommendRateLimiter(deps.Redis, deps.RateLimitPerMinute)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	api.NewRecommendHandler(deps.Recommender, limiter).RegisterRoutes(v1)
	api.NewRecipeHandler(deps.Corpus).RegisterRoutes(v1)

	// The web client posts to /api/recommend
	legacy := router.Group("/api")
	api.NewRecommendHandler(deps.Recommender, limiter).RegisterRoutes(legacy)

	return router
}
