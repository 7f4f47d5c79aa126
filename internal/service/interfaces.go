package service

import (
	"context"
	"errors"

	"github.com/pageza/chefcito/backend/internal/recommend"
	"github.com/pageza/chefcito/backend/internal/types"
)

var (
	// ErrEmptyCorpus is returned when no recipes have been imported.
	ErrEmptyCorpus = errors.New("recipe corpus is empty")

	// ErrModelNotFound is returned by a ModelStore holding no saved parameters.
	ErrModelNotFound = errors.New("ranker model not found")
)

// ICorpusService defines the interface for corpus access
type ICorpusService interface {
	Corpus(ctx context.Context) ([]recommend.Recipe, error)
	Reload(ctx context.Context) error
	Import(ctx context.Context, records []types.RecipeRecord) (*ImportResult, error)
	FindByTitles(ctx context.Context, titles []string) ([]recommend.Recipe, error)
	Records(ctx context.Context, titles []string) ([]types.RecipeRecord, error)
	List(ctx context.Context, limit int) ([]types.RecipeRecord, int64, error)
}

// IRecommenderService defines the interface for ranking and training
type IRecommenderService interface {
	Recommend(ctx context.Context, req *types.RecommendRequest) (*types.RecommendResponse, error)
	Train(ctx context.Context, req *types.TrainRequest) (*types.TrainResponse, error)
}

// ModelStore persists ranker parameters between restarts.
type ModelStore interface {
	Load(ctx context.Context) (*recommend.Ranker, error)
	Save(ctx context.Context, r *recommend.Ranker) error
}
