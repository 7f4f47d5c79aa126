package mocks

import (
	"context"

	"github.com/pageza/chefcito/backend/internal/recommend"
	"github.com/pageza/chefcito/backend/internal/service"
	"github.com/pageza/chefcito/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.IRecommenderService = (*MockRecommenderService)(nil)
	_ service.ICorpusService      = (*MockCorpusService)(nil)
)

// MockRecommenderService is a mock implementation of service.IRecommenderService
type MockRecommenderService struct {
	mock.Mock
}

func (m *MockRecommenderService) Recommend(ctx context.Context, req *types.RecommendRequest) (*types.RecommendResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecommendResponse), args.Error(1)
}

func (m *MockRecommenderService) Train(ctx context.Context, req *types.TrainRequest) (*types.TrainResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TrainResponse), args.Error(1)
}

// MockCorpusService is a mock implementation of service.ICorpusService
type MockCorpusService struct {
	mock.Mock
}

func (m *MockCorpusService) Corpus(ctx context.Context) ([]recommend.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recommend.Recipe), args.Error(1)
}

func (m *MockCorpusService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCorpusService) Import(ctx context.Context, records []types.RecipeRecord) (*service.ImportResult, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockCorpusService) FindByTitles(ctx context.Context, titles []string) ([]recommend.Recipe, error) {
	args := m.Called(ctx, titles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recommend.Recipe), args.Error(1)
}

func (m *MockCorpusService) Records(ctx context.Context, titles []string) ([]types.RecipeRecord, error) {
	args := m.Called(ctx, titles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeRecord), args.Error(1)
}

func (m *MockCorpusService) List(ctx context.Context, limit int) ([]types.RecipeRecord, int64, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]types.RecipeRecord), args.Get(1).(int64), args.Error(2)
}
