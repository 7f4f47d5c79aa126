package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pageza/chefcito/backend/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeRecordRoundTrip(t *testing.T) {
	raw := `{"recipe_title":"Chicken Rice","subcategory":"","ingredients":["chicken","rice"],"num_steps":5}`

	var rec RecipeRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	r := rec.ToRecipe()
	assert.Equal(t, "Chicken Rice", r.Title)
	assert.Equal(t, []string{"chicken", "rice"}, r.Ingredients)
	assert.Equal(t, 5, r.NumSteps)

	back := FromRecipe(r)
	require.NotNil(t, back.NumSteps)
	assert.Equal(t, 5, *back.NumSteps)
	assert.Equal(t, rec.Title, back.Title)
}

func TestRecipeRecordMissingSteps(t *testing.T) {
	var rec RecipeRecord
	require.NoError(t, json.Unmarshal([]byte(`{"recipe_title":"Toast","ingredients":["bread"]}`), &rec))

	r := rec.ToRecipe()
	assert.Equal(t, 0, r.NumSteps)
	assert.Equal(t, recommend.DefaultNumSteps*recommend.MinutesPerStep, recommend.ExtractMetadata(r).CookTimeMinutes)
	assert.Nil(t, FromRecipe(r).NumSteps)
}

func TestIntentRequestToIntent(t *testing.T) {
	pastry := false
	req := IntentRequest{
		Ingredients:    []string{"Chicken", " rice ", ""},
		Allergens:      []string{"NUTS"},
		Pastry:         &pastry,
		MaxCookTime:    60,
		MaxIngredients: 10,
		Spice:          0.4,
		ProteinFilled:  true,
		Loose:          true,
	}

	intent := req.ToIntent()
	assert.True(t, intent.Ingredients.Equal(recommend.NewSet("chicken", "rice")))
	assert.True(t, intent.Allergens.Equal(recommend.NewSet("nuts")))
	assert.Equal(t, recommend.PastryForbid, intent.Pastry)
	assert.Equal(t, 60, intent.MaxCookTime)
	assert.Equal(t, 10, intent.MaxIngredients)
	assert.Equal(t, 0.4, intent.Spice)
	assert.True(t, intent.ProteinRequired)
	assert.Equal(t, recommend.CoverageLoose, intent.Coverage)
	assert.Equal(t, recommend.DefaultK, intent.K)
}

func TestIntentRequestDefaults(t *testing.T) {
	tests := []struct {
		name  string
		req   IntentRequest
		check func(t *testing.T, i recommend.Intent)
	}{
		{
			name: "null pastry is ignored",
			req:  IntentRequest{},
			check: func(t *testing.T, i recommend.Intent) {
				assert.Equal(t, recommend.PastryIgnore, i.Pastry)
			},
		},
		{
			name: "pastry true is required",
			req:  IntentRequest{Pastry: boolPtr(true)},
			check: func(t *testing.T, i recommend.Intent) {
				assert.Equal(t, recommend.PastryRequire, i.Pastry)
			},
		},
		{
			name: "strict unless loose",
			req:  IntentRequest{},
			check: func(t *testing.T, i recommend.Intent) {
				assert.Equal(t, recommend.CoverageStrict, i.Coverage)
			},
		},
		{
			name: "cook time falls back to prep time",
			req:  IntentRequest{MaxPrepTime: 45},
			check: func(t *testing.T, i recommend.Intent) {
				assert.Equal(t, 45, i.MaxCookTime)
			},
		},
		{
			name: "zero limits are unbounded",
			req:  IntentRequest{},
			check: func(t *testing.T, i recommend.Intent) {
				assert.Equal(t, math.MaxInt, i.MaxCookTime)
				assert.Equal(t, math.MaxInt, i.MaxIngredients)
			},
		},
		{
			name: "client spelling of recommendation count",
			req:  IntentRequest{NumReccomendations: 5},
			check: func(t *testing.T, i recommend.Intent) {
				assert.Equal(t, 5, i.K)
			},
		},
		{
			name: "spice is clamped",
			req:  IntentRequest{Spice: 3},
			check: func(t *testing.T, i recommend.Intent) {
				assert.Equal(t, 1.0, i.Spice)
			},
		},
		{
			name: "negative spice is clamped",
			req:  IntentRequest{Spice: -0.5},
			check: func(t *testing.T, i recommend.Intent) {
				assert.Equal(t, 0.0, i.Spice)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.req.ToIntent())
		})
	}
}

func TestRecommendRequestFlatBody(t *testing.T) {
	body := `{"ingredients":["chicken"],"pastry":null,"loose":true,"num_reccomendations":5,"liked":["A"],"disliked":["B"]}`

	var req RecommendRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, []string{"chicken"}, req.Ingredients)
	assert.Nil(t, req.Pastry)
	assert.True(t, req.Loose)
	assert.Equal(t, []string{"A"}, req.Liked)
	assert.Equal(t, []string{"B"}, req.Disliked)
	assert.Equal(t, 5, req.ToIntent().K)
}

func boolPtr(b bool) *bool { return &b }
