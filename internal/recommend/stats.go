package recommend

import "math"

// DefaultAvgSpice stands in for the liked set's average spice when nothing is liked.
const DefaultAvgSpice = 0.3

// Profile counts ingredient occurrences across a reference batch of recipes.
type Profile map[string]int

// BuildProfile counts every ingredient occurrence across recipes.
func BuildProfile(recipes []Recipe) Profile {
	p := make(Profile)
	for _, r := range recipes {
		for ing := range ExtractMetadata(r).Ingredients {
			p[ing]++
		}
	}
	return p
}

// Total is the number of ingredient occurrences counted.
func (p Profile) Total() int {
	total := 0
	for _, n := range p {
		total += n
	}
	return total
}

// Similarity is the share of the profile's occurrences covered by the recipe's
// ingredients. The denominator is floored at 1, so an empty profile gives 0.
func (p Profile) Similarity(m Metadata) float64 {
	score := 0
	for ing := range m.Ingredients {
		score += p[ing]
	}
	return float64(score) / float64(max(p.Total(), 1))
}

// IngredientWeights computes log(total occurrences / occurrences of t) for every
// ingredient t seen in the batch. Absent ingredients have no entry.
func IngredientWeights(recipes []Recipe) map[string]float64 {
	counts := BuildProfile(recipes)
	total := float64(counts.Total())
	weights := make(map[string]float64, len(counts))
	for ing, n := range counts {
		weights[ing] = math.Log(total / float64(n))
	}
	return weights
}

// CorpusStats bundles the batch-level statistics the feature builder needs.
type CorpusStats struct {
	Weights       map[string]float64
	Liked         Profile
	Disliked      Profile
	AvgLikedSpice float64
}

// NewCorpusStats computes weights over corpus and profiles over the liked and
// disliked sets.
func NewCorpusStats(corpus, liked, disliked []Recipe) CorpusStats {
	return CorpusStats{
		Weights:       IngredientWeights(corpus),
		Liked:         BuildProfile(liked),
		Disliked:      BuildProfile(disliked),
		AvgLikedSpice: averageSpice(liked),
	}
}

func averageSpice(recipes []Recipe) float64 {
	if len(recipes) == 0 {
		return DefaultAvgSpice
	}
	sum := 0.0
	for _, r := range recipes {
		sum += ExtractMetadata(r).Spice
	}
	return sum / float64(len(recipes))
}
