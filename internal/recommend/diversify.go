package recommend

// DefaultDiversityThreshold is the ingredient Jaccard similarity at or above
// which a candidate counts as a near-duplicate.
const DefaultDiversityThreshold = 0.3

// Scored is a candidate recipe with its final score.
type Scored struct {
	Recipe   Recipe
	Metadata Metadata
	Score    float64
	// Index is the recipe's position in the scored batch.
	Index int
}

// Jaccard computes |a ∩ b| / |a ∪ b|, and 0 when both sets are empty.
func Jaccard(a, b Set) float64 {
	inter := a.IntersectionSize(b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Diversify walks score-descending candidates and keeps each one whose
// ingredient similarity to every kept candidate is below threshold, stopping
// at k kept.
func Diversify(candidates []Scored, k int, threshold float64) []Scored {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}
	selected := make([]Scored, 0, min(k, len(candidates)))
	for _, c := range candidates {
		if len(selected) == k {
			break
		}
		distinct := true
		for _, s := range selected {
			if Jaccard(c.Metadata.Ingredients, s.Metadata.Ingredients) >= threshold {
				distinct = false
				break
			}
		}
		if distinct {
			selected = append(selected, c)
		}
	}
	return selected
}
