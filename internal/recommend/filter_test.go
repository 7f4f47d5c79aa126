package recommend

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openIntent(ingredients ...string) Intent {
	return Intent{
		Ingredients:    NewSet(ingredients...),
		Allergens:      NewSet(),
		Pastry:         PastryIgnore,
		MaxIngredients: 100,
		MaxCookTime:    1000,
		Spice:          0.5,
		Coverage:       CoverageLoose,
		K:              3,
	}
}

func TestCoverageScenarios(t *testing.T) {
	m := ExtractMetadata(chickenRice())

	loose := openIntent("chicken", "rice")
	assert.True(t, Passes(m, loose))
	strict := loose
	strict.Coverage = CoverageStrict
	assert.True(t, Passes(m, strict))

	strictBeef := openIntent("chicken", "beef")
	strictBeef.Coverage = CoverageStrict
	assert.False(t, Passes(m, strictBeef), "beef is missing")
	looseBeef := openIntent("chicken", "beef")
	assert.True(t, Passes(m, looseBeef), "chicken is present")
}

func TestPredicates(t *testing.T) {
	m := ExtractMetadata(chickenRice())
	base := openIntent("rice")

	tests := []struct {
		name   string
		mutate func(i *Intent)
		pred   Predicate
		want   bool
	}{
		{"pastry ignored", func(i *Intent) {}, PastryMatches, true},
		{"pastry required", func(i *Intent) { i.Pastry = PastryRequire }, PastryMatches, false},
		{"pastry forbidden", func(i *Intent) { i.Pastry = PastryForbid }, PastryMatches, true},
		{"protein required and present", func(i *Intent) { i.ProteinRequired = true }, ProteinSatisfied, true},
		{"ingredient limit equal", func(i *Intent) { i.MaxIngredients = 3 }, WithinIngredientLimit, true},
		{"ingredient limit below", func(i *Intent) { i.MaxIngredients = 2 }, WithinIngredientLimit, false},
		{"cook time equal", func(i *Intent) { i.MaxCookTime = 15 }, WithinCookTime, true},
		{"cook time below", func(i *Intent) { i.MaxCookTime = 14 }, WithinCookTime, false},
		{"nuts blocked", func(i *Intent) { i.Allergens = NewSet("nuts") }, AllergenFree, true},
		{"unknown allergen", func(i *Intent) { i.Allergens = NewSet("shellfish") }, AllergenFree, true},
		{"loose without overlap", func(i *Intent) { i.Ingredients = NewSet("tofu") }, CoverageSatisfied, false},
		{"loose with empty intent", func(i *Intent) { i.Ingredients = NewSet() }, CoverageSatisfied, false},
		{"strict with empty intent", func(i *Intent) {
			i.Ingredients = NewSet()
			i.Coverage = CoverageStrict
		}, CoverageSatisfied, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := base
			tt.mutate(&i)
			assert.Equal(t, tt.want, tt.pred(m, i))
		})
	}
}

func TestProteinSatisfiedWithoutProtein(t *testing.T) {
	m := ExtractMetadata(Recipe{Ingredients: []string{"rice", "onion"}})
	i := openIntent("rice")
	i.ProteinRequired = true
	assert.False(t, ProteinSatisfied(m, i))
}

func TestPassesIsOrderIndependent(t *testing.T) {
	recipes := sampleCorpus()
	intents := []Intent{openIntent("chicken", "rice"), openIntent("beef")}
	intents[1].MaxCookTime = 20
	intents[1].Allergens = NewSet("milk")

	rng := rand.New(rand.NewSource(7))
	for _, intent := range intents {
		for _, r := range recipes {
			m := ExtractMetadata(r)
			want := Passes(m, intent)
			for n := 0; n < 10; n++ {
				preds := IntentPredicates()
				rng.Shuffle(len(preds), func(a, b int) { preds[a], preds[b] = preds[b], preds[a] })
				assert.Equal(t, want, All(preds...)(m, intent), r.Title)
			}
		}
	}
}

func TestStrictImpliesLoose(t *testing.T) {
	for _, r := range sampleCorpus() {
		m := ExtractMetadata(r)
		for _, ings := range [][]string{{"chicken"}, {"chicken", "rice"}, {"beef", "onion"}, {"pasta"}} {
			strict := openIntent(ings...)
			strict.Coverage = CoverageStrict
			loose := openIntent(ings...)
			if Passes(m, strict) {
				assert.True(t, Passes(m, loose), r.Title)
			}
		}
	}
}

func TestLegalUniverseMonotonic(t *testing.T) {
	corpus := sampleCorpus()
	prev := len(corpus) + 1
	for _, limit := range []int{1000, 30, 20, 15, 10, 0} {
		i := openIntent("chicken", "rice", "beef", "onion", "garlic")
		i.MaxCookTime = limit
		size := len(LegalUniverse(corpus, i))
		assert.LessOrEqual(t, size, prev, "cook time %d", limit)
		prev = size
	}

	prev = len(corpus) + 1
	for _, limit := range []int{100, 5, 4, 3, 2, 0} {
		i := openIntent("chicken", "rice", "beef", "onion", "garlic")
		i.MaxIngredients = limit
		size := len(LegalUniverse(corpus, i))
		assert.LessOrEqual(t, size, prev, "ingredients %d", limit)
		prev = size
	}
}

func TestLegalUniverseProteinSetMatch(t *testing.T) {
	corpus := []Recipe{
		{Title: "chicken only", Ingredients: []string{"chicken", "rice"}, NumSteps: 3},
		{Title: "chicken and beef", Ingredients: []string{"chicken", "beef", "rice"}, NumSteps: 3},
		{Title: "veg", Ingredients: []string{"rice", "onion"}, NumSteps: 3},
	}

	legal := LegalUniverse(corpus, openIntent("chicken", "rice"))
	if assert.Len(t, legal, 1) {
		assert.Equal(t, "chicken only", legal[0].Title)
	}

	legal = LegalUniverse(corpus, openIntent("rice"))
	assert.Len(t, legal, 3, "no protein in the intent means no protein-set constraint")
}

func TestLegalUniverseEmpty(t *testing.T) {
	assert.Empty(t, LegalUniverse(nil, openIntent("rice")))
	assert.Empty(t, LegalUniverse(sampleCorpus(), openIntent("durian")))
}
