package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoredOf(score float64, ingredients ...string) Scored {
	r := Recipe{Title: ingredients[0], Ingredients: ingredients}
	return Scored{Recipe: r, Metadata: ExtractMetadata(r), Score: score}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want float64
	}{
		{"both empty", NewSet(), NewSet(), 0},
		{"one empty", NewSet("a"), NewSet(), 0},
		{"identical", NewSet("a", "b"), NewSet("a", "b"), 1},
		{"half", NewSet("a", "b"), NewSet("b", "c", "a", "d"), 0.5},
		{"disjoint", NewSet("a"), NewSet("b"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.want, Jaccard(tt.b, tt.a), 1e-12)
		})
	}
}

func TestDiversifyDropsNearDuplicates(t *testing.T) {
	candidates := []Scored{
		scoredOf(0.9, "chicken", "rice", "onion"),
		scoredOf(0.8, "chicken", "rice", "garlic"), // 2/4 with the first
		scoredOf(0.7, "beef", "potato"),
		scoredOf(0.6, "tofu", "rice", "soy sauce", "ginger", "scallion"), // 1/7 with the first
	}

	got := Diversify(candidates, 3, DefaultDiversityThreshold)
	if assert.Len(t, got, 3) {
		assert.Equal(t, "chicken", got[0].Recipe.Title)
		assert.Equal(t, "beef", got[1].Recipe.Title)
		assert.Equal(t, "tofu", got[2].Recipe.Title)
	}
}

func TestDiversifyPostcondition(t *testing.T) {
	corpus := sampleCorpus()
	candidates := make([]Scored, len(corpus))
	for i, r := range corpus {
		candidates[i] = Scored{Recipe: r, Metadata: ExtractMetadata(r), Score: 1 - float64(i)/100}
	}

	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.9} {
		got := Diversify(candidates, len(candidates), threshold)
		assert.NotEmpty(t, got)
		for a := range got {
			for b := a + 1; b < len(got); b++ {
				assert.Less(t, Jaccard(got[a].Metadata.Ingredients, got[b].Metadata.Ingredients), threshold)
			}
		}
	}
}

func TestDiversifyStopsAtK(t *testing.T) {
	candidates := []Scored{
		scoredOf(0.9, "a"),
		scoredOf(0.8, "b"),
		scoredOf(0.7, "c"),
	}
	assert.Len(t, Diversify(candidates, 2, DefaultDiversityThreshold), 2)
	assert.Nil(t, Diversify(candidates, 0, DefaultDiversityThreshold))
	assert.Nil(t, Diversify(nil, 3, DefaultDiversityThreshold))
}
