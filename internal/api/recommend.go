package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefcito/backend/internal/middleware"
	"github.com/pageza/chefcito/backend/internal/service"
	"github.com/pageza/chefcito/backend/internal/types"
)

// RecommendHandler serves ranking and training
type RecommendHandler struct {
	recommender service.IRecommenderService
	limiter     *middleware.RateLimiter
}

// NewRecommendHandler creates a RecommendHandler. limiter may be nil.
func NewRecommendHandler(recommender service.IRecommenderService, limiter *middleware.RateLimiter) *RecommendHandler {
	return &RecommendHandler{recommender: recommender, limiter: limiter}
}

// RegisterRoutes registers the ranking routes
func (h *RecommendHandler) RegisterRoutes(router *gin.RouterGroup) {
	limited := router.Group("")
	limited.Use(h.limiter.RateLimitMiddleware())
	{
		limited.POST("/recommend", h.Recommend)
		limited.POST("/train", h.Train)
	}
}

// Recommend returns the best recipes for the posted intent
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req types.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.recommender.Recommend(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Train fits the ranker to the posted feedback
func (h *RecommendHandler) Train(c *gin.Context) {
	var req types.TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.recommender.Train(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
