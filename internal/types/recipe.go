package types

import (
	"github.com/pageza/chefcito/backend/internal/recommend"
)

// RecipeRecord is the JSON shape of a cleaned corpus recipe.
type RecipeRecord struct {
	Title       string   `json:"recipe_title" binding:"required"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients"`
	Directions  []string `json:"directions,omitempty"`
	NumSteps    *int     `json:"num_steps,omitempty"`
}

// ToRecipe converts the record into the engine's recipe. A missing step count
// stays missing so the engine applies its default.
func (r RecipeRecord) ToRecipe() recommend.Recipe {
	steps := 0
	if r.NumSteps != nil {
		steps = *r.NumSteps
	}
	return recommend.Recipe{
		Title:       r.Title,
		Ingredients: append([]string(nil), r.Ingredients...),
		NumSteps:    steps,
		Subcategory: r.Subcategory,
	}
}

// FromRecipe builds a record from an engine recipe.
func FromRecipe(r recommend.Recipe) RecipeRecord {
	rec := RecipeRecord{
		Title:       r.Title,
		Subcategory: r.Subcategory,
		Ingredients: append([]string{}, r.Ingredients...),
	}
	if r.NumSteps > 0 {
		steps := r.NumSteps
		rec.NumSteps = &steps
	}
	return rec
}
