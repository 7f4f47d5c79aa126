package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pageza/chefcito/backend/internal/types"
)

func steps(n int) *int { return &n }

// SampleRecords is a small corpus that exercises every filter dimension.
func SampleRecords() []types.RecipeRecord {
	return []types.RecipeRecord{
		{Title: "Chicken Rice", Ingredients: []string{"chicken", "rice", "jalapeno"}, NumSteps: steps(5)},
		{Title: "Garlic Chicken", Ingredients: []string{"chicken", "garlic", "butter", "onion"}, NumSteps: steps(6)},
		{Title: "Beef Tacos", Ingredients: []string{"beef", "tortilla", "onion", "chili powder"}, NumSteps: steps(4)},
		{Title: "Potato Soup", Ingredients: []string{"potato", "onion", "milk", "butter"}, NumSteps: steps(8)},
		{Title: "Peanut Noodles", Ingredients: []string{"noodles", "peanut butter", "soy sauce", "garlic"}, NumSteps: steps(3)},
		{Title: "Chocolate Cake", Subcategory: "Allrecipes Allstars Desserts", Ingredients: []string{"flour", "sugar", "egg", "cocoa"}, NumSteps: steps(9)},
		{Title: "Shrimp Pasta", Ingredients: []string{"shrimp", "pasta", "garlic", "cayenne"}, NumSteps: steps(5)},
		{Title: "Rice Bowl", Ingredients: []string{"rice", "tofu", "onion"}},
	}
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}
