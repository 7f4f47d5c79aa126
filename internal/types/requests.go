package types

import "github.com/pageza/chefcito/backend/internal/recommend"

// RecommendRequest carries an intent plus the titles of recipes the user
// liked and disliked. The intent fields sit at the top level of the body.
type RecommendRequest struct {
	IntentRequest
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
}

// TrainRequest has the same shape; the intent shapes the training features.
type TrainRequest struct {
	IntentRequest
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
}

// RecommendResponse lists the chosen recipes best first, with their final scores.
type RecommendResponse struct {
	Recipes []RecipeRecord `json:"recipes"`
	Scores  []float64      `json:"scores"`
}

// TrainResponse reports what a training call did.
type TrainResponse struct {
	recommend.TrainResult
}

// RecipeListResponse is the corpus listing.
type RecipeListResponse struct {
	Recipes []RecipeRecord `json:"recipes"`
	Total   int            `json:"total"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
