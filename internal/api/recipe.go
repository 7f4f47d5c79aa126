package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefcito/backend/internal/service"
	"github.com/pageza/chefcito/backend/internal/types"
)

const maxListLimit = 1000

type RecipeHandler struct {
	corpus service.ICorpusService
}

func NewRecipeHandler(corpus service.ICorpusService) *RecipeHandler {
	return &RecipeHandler{corpus: corpus}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes", h.ListRecipes)
}

// ListRecipes lists the corpus in order. ?limit caps the page size.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	records, total, err := h.corpus.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RecipeListResponse{Recipes: records, Total: int(total)})
}
