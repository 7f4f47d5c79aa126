// Package recommend ranks recipes against a user's intent.
//
// A call runs: metadata extraction per recipe, hard filtering into the legal
// universe, corpus statistics over the candidates, feature vectors, Ranker
// scoring, a stable sort, and a diversification pass that drops
// near-duplicates. Everything here is synchronous and free of I/O; the only
// long-lived state is the Ranker passed in by the caller.
package recommend

import "sort"

// Options tunes a Recommend call.
type Options struct {
	// RestrictToLegalUniverse filters candidates through LegalPredicate first.
	RestrictToLegalUniverse bool

	// ModelWeight blends the model score with the raw overlap ratio:
	// final = w*model + (1-w)*overlap. 1 means the model alone. Default: 0.7.
	ModelWeight float64

	// DiversityThreshold is passed to Diversify. Default: 0.3.
	DiversityThreshold float64
}

// DefaultOptions returns the options used by the service.
func DefaultOptions() Options {
	return Options{
		RestrictToLegalUniverse: true,
		ModelWeight:             0.7,
		DiversityThreshold:      DefaultDiversityThreshold,
	}
}

func (o Options) withDefaults() Options {
	if o.ModelWeight < 0 || o.ModelWeight > 1 {
		o.ModelWeight = DefaultOptions().ModelWeight
	}
	if o.DiversityThreshold <= 0 {
		o.DiversityThreshold = DefaultDiversityThreshold
	}
	return o
}

// Recommend returns at most k recipes for the intent, best first. k <= 0
// falls back to intent.K and then DefaultK.
func Recommend(recipes []Recipe, intent Intent, r *Ranker, liked, disliked []Recipe, k int, opts Options) []Recipe {
	scored := RecommendScored(recipes, intent, r, liked, disliked, k, opts)
	out := make([]Recipe, len(scored))
	for i, s := range scored {
		out[i] = s.Recipe
	}
	return out
}

// RecommendScored is Recommend keeping the final scores and metadata.
func RecommendScored(recipes []Recipe, intent Intent, r *Ranker, liked, disliked []Recipe, k int, opts Options) []Scored {
	opts = opts.withDefaults()
	if k <= 0 {
		k = intent.K
	}
	if k <= 0 {
		k = DefaultK
	}

	candidates := recipes
	if opts.RestrictToLegalUniverse {
		candidates = LegalUniverse(recipes, intent)
	}
	if len(candidates) == 0 {
		return nil
	}

	stats := NewCorpusStats(candidates, liked, disliked)
	scored := make([]Scored, len(candidates))
	for idx, rec := range candidates {
		m := ExtractMetadata(rec)
		f := BuildFeatures(m, intent, stats)
		score := r.Score(f)
		if opts.ModelWeight < 1 {
			score = opts.ModelWeight*score + (1-opts.ModelWeight)*f[FeatOverlap]
		}
		scored[idx] = Scored{Recipe: rec, Metadata: m, Score: score, Index: idx}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	return Diversify(scored, k, opts.DiversityThreshold)
}
