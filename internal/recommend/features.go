package recommend

import "math"

// NumFeatures is the length of a feature vector.
const NumFeatures = 12

// ingredientDensityScale normalizes the ingredient count feature.
const ingredientDensityScale = 20.0

// Feature positions within a FeatureVector.
const (
	FeatOverlap = iota
	FeatWeightedOverlap
	FeatSpiceCloseness
	FeatProteinMatch
	FeatCookTime
	FeatDensity
	FeatLikedSimilarity
	FeatDislikedDistance
	FeatNovelty
	FeatPersonalSpice
	FeatPastry
	FeatProteinDiversity
)

// FeatureVector is the model input for one (recipe, intent) pair.
type FeatureVector [NumFeatures]float64

// BuildFeatures maps a recipe's metadata, the intent and the batch statistics
// to a feature vector.
func BuildFeatures(m Metadata, i Intent, stats CorpusStats) FeatureVector {
	shared := m.Ingredients.Intersect(i.Ingredients)

	weighted := 0.0
	for _, ing := range shared.Keys() {
		weighted += stats.Weights[ing]
	}

	novel := 0
	for ing := range m.Ingredients {
		if _, ok := stats.Liked[ing]; !ok {
			novel++
		}
	}

	var f FeatureVector
	f[FeatOverlap] = float64(len(shared)) / float64(max(len(i.Ingredients), 1))
	f[FeatWeightedOverlap] = weighted
	f[FeatSpiceCloseness] = 1 - math.Abs(m.Spice-i.Spice)
	f[FeatProteinMatch] = float64(m.Proteins.IntersectionSize(ExtractProteins(i.Ingredients)))
	f[FeatCookTime] = float64(m.CookTimeMinutes)
	f[FeatDensity] = float64(m.NumIngredients) / ingredientDensityScale
	f[FeatLikedSimilarity] = stats.Liked.Similarity(m)
	f[FeatDislikedDistance] = 1 - stats.Disliked.Similarity(m)
	f[FeatNovelty] = float64(novel) / float64(max(len(m.Ingredients), 1))
	f[FeatPersonalSpice] = 1 - math.Abs(m.Spice-stats.AvgLikedSpice)
	if m.Pastry {
		f[FeatPastry] = 1
	}
	f[FeatProteinDiversity] = float64(len(m.Proteins))
	return f
}
