package recommend

import "strings"

const (
	// DefaultNumSteps is used when a recipe record carries no step count.
	DefaultNumSteps = 10

	// MinutesPerStep is the cook time heuristic; upstream has no per-step durations.
	MinutesPerStep = 3

	// DessertSubcategory is the corpus label that marks a pastry recipe.
	DessertSubcategory = "Allrecipes Allstars Desserts"
)

// Recipe is one record of the corpus. Ingredients are already normalized.
type Recipe struct {
	Title       string
	Ingredients []string
	// NumSteps <= 0 means the field was missing.
	NumSteps    int
	Subcategory string
}

// Metadata is the derived per-call view of a recipe used by filters and features.
type Metadata struct {
	Proteins        Set
	ProteinFilled   bool
	Spice           float64
	Pastry          bool
	Ingredients     Set
	NumIngredients  int
	CookTimeMinutes int
}

// ExtractMetadata derives the semantic attributes of a recipe.
func ExtractMetadata(r Recipe) Metadata {
	ingredients := make(Set, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients[strings.ToLower(ing)] = struct{}{}
	}

	steps := r.NumSteps
	if steps <= 0 {
		steps = DefaultNumSteps
	}

	proteins := ExtractProteins(ingredients)
	return Metadata{
		Proteins:        proteins,
		ProteinFilled:   len(proteins) > 0,
		Spice:           InferSpice(ingredients),
		Pastry:          r.Subcategory == DessertSubcategory,
		Ingredients:     ingredients,
		NumIngredients:  len(ingredients),
		CookTimeMinutes: steps * MinutesPerStep,
	}
}

// ExtractProteins returns the canonical proteins whose variants appear in ingredients.
func ExtractProteins(ingredients Set) Set {
	found := make(Set)
	for canon, variants := range proteinVariants {
		if ingredients.Intersects(variants) {
			found[canon] = struct{}{}
		}
	}
	return found
}

// InferSpice sums the weight of every spice indicator found as a substring of
// any ingredient, capped at 1.
func InferSpice(ingredients Set) float64 {
	score := 0.0
	for _, ing := range ingredients.Keys() {
		for _, token := range spiceOrder {
			if strings.Contains(ing, token) {
				score += spiceWeights[token]
			}
		}
	}
	if score > 1 {
		return 1
	}
	return score
}

// ContainsAllergen reports whether any blocked category has a token in ingredients.
// Unknown categories never block.
func ContainsAllergen(ingredients Set, blocked Set) bool {
	for category := range blocked {
		if ingredients.Intersects(allergenTokens[category]) {
			return true
		}
	}
	return false
}
