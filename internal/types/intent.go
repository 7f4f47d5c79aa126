package types

import (
	"math"
	"strings"

	"github.com/pageza/chefcito/backend/internal/recommend"
)

// IntentRequest is the intent payload as sent by clients.
type IntentRequest struct {
	Ingredients    []string `json:"ingredients"`
	Allergens      []string `json:"allergens"`
	Pastry         *bool    `json:"pastry"`
	MaxPrepTime    int      `json:"max_prep_time" binding:"gte=0"`
	MaxCookTime    int      `json:"max_cook_time" binding:"gte=0"`
	MaxIngredients int      `json:"max_num_ingredients" binding:"gte=0"`
	Spice          float64  `json:"spice"`
	ProteinFilled  bool     `json:"protein_filled"`
	Loose          bool     `json:"loose"`

	NumRecommendations int `json:"num_recommendations" binding:"gte=0"`
	// Spelling used by the web client.
	NumReccomendations int `json:"num_reccomendations" binding:"gte=0"`
}

// ToIntent normalizes the payload into an engine intent. Zero limits are
// treated as unbounded.
func (r IntentRequest) ToIntent() recommend.Intent {
	intent := recommend.Intent{
		Ingredients:     lowerSet(r.Ingredients),
		Allergens:       lowerSet(r.Allergens),
		MaxIngredients:  r.MaxIngredients,
		MaxCookTime:     r.MaxCookTime,
		Spice:           clamp01(r.Spice),
		ProteinRequired: r.ProteinFilled,
		Coverage:        recommend.CoverageStrict,
		K:               r.NumRecommendations,
	}

	if r.Loose {
		intent.Coverage = recommend.CoverageLoose
	}

	switch {
	case r.Pastry == nil:
		intent.Pastry = recommend.PastryIgnore
	case *r.Pastry:
		intent.Pastry = recommend.PastryRequire
	default:
		intent.Pastry = recommend.PastryForbid
	}

	if intent.MaxCookTime == 0 {
		intent.MaxCookTime = r.MaxPrepTime
	}
	if intent.MaxCookTime == 0 {
		intent.MaxCookTime = math.MaxInt
	}
	if intent.MaxIngredients == 0 {
		intent.MaxIngredients = math.MaxInt
	}

	if intent.K == 0 {
		intent.K = r.NumReccomendations
	}
	if intent.K == 0 {
		intent.K = recommend.DefaultK
	}

	return intent
}

func lowerSet(items []string) recommend.Set {
	set := make(recommend.Set, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
