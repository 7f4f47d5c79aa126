package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pageza/chefcito/backend/config"
	"github.com/pageza/chefcito/backend/internal/recommend"
	"github.com/pageza/chefcito/backend/internal/testhelpers"
	"github.com/pageza/chefcito/backend/internal/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockModelStore is a mock implementation of ModelStore
type MockModelStore struct {
	mock.Mock
}

func (m *MockModelStore) Load(ctx context.Context) (*recommend.Ranker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommend.Ranker), args.Error(1)
}

func (m *MockModelStore) Save(ctx context.Context, r *recommend.Ranker) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func testRecommenderConfig() RecommenderConfig {
	cfg := DefaultRecommenderConfig()
	cfg.HiddenWidth = 16
	cfg.Train.Epochs = 20
	return cfg
}

func chickenRequest() *types.RecommendRequest {
	return &types.RecommendRequest{
		IntentRequest: types.IntentRequest{
			Ingredients: []string{"chicken"},
			Loose:       true,
		},
	}
}

func TestRecommenderRecommend(t *testing.T) {
	ctx := context.Background()
	svc := NewRecommenderService(newSeededCorpus(t), nil, testRecommenderConfig())

	before := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("ok"))

	resp, err := svc.Recommend(ctx, chickenRequest())
	require.NoError(t, err)
	require.Len(t, resp.Recipes, 2)
	require.Len(t, resp.Scores, 2)

	titles := []string{resp.Recipes[0].Title, resp.Recipes[1].Title}
	assert.ElementsMatch(t, []string{"Chicken Rice", "Garlic Chicken"}, titles)
	assert.GreaterOrEqual(t, resp.Scores[0], resp.Scores[1])
	for _, s := range resp.Scores {
		assert.True(t, s >= 0 && s <= 1)
	}

	assert.Equal(t, before+1, testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("ok")))
}

func TestRecommenderRecommendIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewRecommenderService(newSeededCorpus(t), nil, testRecommenderConfig())

	req := &types.RecommendRequest{
		IntentRequest: types.IntentRequest{Ingredients: []string{"onion", "rice"}, Loose: true, NumRecommendations: 4},
		Liked:         []string{"Potato Soup"},
		Disliked:      []string{"Beef Tacos"},
	}

	first, err := svc.Recommend(ctx, req)
	require.NoError(t, err)
	second, err := svc.Recommend(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first.Recipes), 4)
}

func TestRecommenderNoMatches(t *testing.T) {
	svc := NewRecommenderService(newSeededCorpus(t), nil, testRecommenderConfig())

	resp, err := svc.Recommend(context.Background(), &types.RecommendRequest{
		IntentRequest: types.IntentRequest{Ingredients: []string{"unobtainium"}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Recipes)
	assert.Empty(t, resp.Scores)
}

func TestRecommenderEmptyCorpus(t *testing.T) {
	svc := NewRecommenderService(NewCorpusService(testhelpers.SetupTestDB(t)), nil, testRecommenderConfig())

	_, err := svc.Recommend(context.Background(), chickenRequest())
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = svc.Train(context.Background(), &types.TrainRequest{Liked: []string{"x"}})
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestRecommenderTrainSavesModel(t *testing.T) {
	ctx := context.Background()
	store := new(MockModelStore)
	store.On("Save", mock.Anything, mock.AnythingOfType("*recommend.Ranker")).Return(nil).Once()

	svc := NewRecommenderService(newSeededCorpus(t), store, testRecommenderConfig())
	before := svc.Ranker()

	resp, err := svc.Train(ctx, &types.TrainRequest{
		IntentRequest: types.IntentRequest{Ingredients: []string{"chicken"}, Loose: true},
		Liked:         []string{"Chicken Rice", "Garlic Chicken"},
		Disliked:      []string{"Chocolate Cake", "Unknown"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Examples)
	assert.Less(t, resp.FinalLoss, resp.InitialLoss)
	assert.NotEqual(t, before, svc.Ranker())

	store.AssertExpectations(t)
}

func TestRecommenderTrainWithoutFeedbackIsNoop(t *testing.T) {
	store := new(MockModelStore)
	svc := NewRecommenderService(newSeededCorpus(t), store, testRecommenderConfig())
	before := svc.Ranker()

	resp, err := svc.Train(context.Background(), &types.TrainRequest{Liked: []string{"Nope"}})
	require.NoError(t, err)
	assert.Zero(t, resp.Examples)
	assert.Equal(t, before, svc.Ranker())
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecommenderTrainSaveError(t *testing.T) {
	store := new(MockModelStore)
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("bucket gone"))

	svc := NewRecommenderService(newSeededCorpus(t), store, testRecommenderConfig())
	_, err := svc.Train(context.Background(), &types.TrainRequest{Liked: []string{"Chicken Rice"}})
	assert.ErrorContains(t, err, "bucket gone")
}

func TestRecommenderLoadOrInit(t *testing.T) {
	ctx := context.Background()
	corpus := newSeededCorpus(t)

	t.Run("missing model keeps seeded ranker", func(t *testing.T) {
		store := new(MockModelStore)
		store.On("Load", mock.Anything).Return(nil, ErrModelNotFound)

		svc := NewRecommenderService(corpus, store, testRecommenderConfig())
		seeded := svc.Ranker()
		require.NoError(t, svc.LoadOrInit(ctx))
		assert.Equal(t, seeded, svc.Ranker())
	})

	t.Run("stored model replaces ranker", func(t *testing.T) {
		stored := recommend.NewRanker(24, 99)
		store := new(MockModelStore)
		store.On("Load", mock.Anything).Return(stored, nil)

		svc := NewRecommenderService(corpus, store, testRecommenderConfig())
		require.NoError(t, svc.LoadOrInit(ctx))
		assert.Equal(t, stored, svc.Ranker())
		assert.Equal(t, 24, svc.Ranker().Hidden())
	})

	t.Run("load failure is reported", func(t *testing.T) {
		store := new(MockModelStore)
		store.On("Load", mock.Anything).Return(nil, errors.New("denied"))

		svc := NewRecommenderService(corpus, store, testRecommenderConfig())
		assert.ErrorContains(t, svc.LoadOrInit(ctx), "denied")
	})

	t.Run("nil store", func(t *testing.T) {
		svc := NewRecommenderService(corpus, nil, testRecommenderConfig())
		assert.NoError(t, svc.LoadOrInit(ctx))
	})
}

func TestRecommenderConfigFrom(t *testing.T) {
	rc := RecommenderConfigFrom(&config.Config{
		HiddenWidth:        48,
		ModelSeed:          5,
		TrainEpochs:        12,
		LearningRate:       0.05,
		ModelWeight:        1,
		DiversityThreshold: 0.5,
	})

	assert.Equal(t, 48, rc.HiddenWidth)
	assert.Equal(t, int64(5), rc.Seed)
	assert.Equal(t, 12, rc.Train.Epochs)
	assert.Equal(t, 0.05, rc.Train.LearningRate)
	assert.Equal(t, 0.9, rc.Train.Beta1)
	assert.Equal(t, 1.0, rc.Options.ModelWeight)
	assert.Equal(t, 0.5, rc.Options.DiversityThreshold)
	assert.True(t, rc.Options.RestrictToLegalUniverse)
}

func TestRecordTrainMetrics(t *testing.T) {
	before := testutil.ToFloat64(TrainExamplesTotal)
	RecordTrain("ok", 4, 0.25)
	assert.Equal(t, before+4, testutil.ToFloat64(TrainExamplesTotal))
	assert.Equal(t, 0.25, testutil.ToFloat64(TrainFinalLoss))

	RecordTrain("noop", 10, 9)
	assert.Equal(t, before+4, testutil.ToFloat64(TrainExamplesTotal))
}
