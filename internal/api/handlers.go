package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefcito/backend/internal/database"
	"github.com/pageza/chefcito/backend/internal/logging"
	"github.com/pageza/chefcito/backend/internal/middleware"
	"github.com/pageza/chefcito/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Version is reported by the health endpoint
const Version = "v1.0.0"

// HealthHandler reports the state of the service and its backing stores
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a HealthHandler. Either dependency may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	status := http.StatusOK

	if h.db != nil {
		if err := database.HealthCheck(ctx, h.db); err != nil {
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}

	// Redis only backs rate limiting, so losing it degrades rather than fails.
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "degraded"
		} else {
			checks["redis"] = "ok"
		}
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":  state,
		"message": "Chefcito API is running",
		"version": Version,
		"checks":  checks,
	})
}

// Welcome greets API clients
func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Chefcito!"})
}

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCorpus):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe corpus is empty"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		logging.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
