package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pageza/chefcito/backend/config"
	"github.com/pageza/chefcito/backend/internal/logging"
	"github.com/pageza/chefcito/backend/internal/recommend"
	"github.com/pageza/chefcito/backend/internal/types"
)

// RecommenderConfig holds the tuning knobs of the recommender service
type RecommenderConfig struct {
	HiddenWidth int
	Seed        int64
	Train       recommend.TrainConfig
	Options     recommend.Options
}

// DefaultRecommenderConfig returns the engine defaults.
func DefaultRecommenderConfig() RecommenderConfig {
	return RecommenderConfig{
		HiddenWidth: recommend.DefaultHiddenWidth,
		Seed:        42,
		Train:       recommend.DefaultTrainConfig(),
		Options:     recommend.DefaultOptions(),
	}
}

// RecommenderConfigFrom maps application configuration onto the service.
func RecommenderConfigFrom(cfg *config.Config) RecommenderConfig {
	rc := DefaultRecommenderConfig()
	rc.HiddenWidth = cfg.HiddenWidth
	rc.Seed = cfg.ModelSeed
	rc.Train.Epochs = cfg.TrainEpochs
	rc.Train.LearningRate = cfg.LearningRate
	rc.Options.ModelWeight = cfg.ModelWeight
	rc.Options.DiversityThreshold = cfg.DiversityThreshold
	return rc
}

// RecommenderService owns the process-wide ranker. Scoring holds the read
// lock; training holds the write lock.
type RecommenderService struct {
	corpus ICorpusService
	store  ModelStore
	cfg    RecommenderConfig

	mu     sync.RWMutex
	ranker *recommend.Ranker
}

// NewRecommenderService creates a service with a freshly seeded ranker. store may be nil.
func NewRecommenderService(corpus ICorpusService, store ModelStore, cfg RecommenderConfig) *RecommenderService {
	return &RecommenderService{
		corpus: corpus,
		store:  store,
		cfg:    cfg,
		ranker: recommend.NewRanker(cfg.HiddenWidth, cfg.Seed),
	}
}

// LoadOrInit replaces the ranker with stored parameters when there are any.
// A missing model keeps the seeded ranker.
func (s *RecommenderService) LoadOrInit(ctx context.Context) error {
	if s.store == nil {
		logging.Info().Int("hidden", s.cfg.HiddenWidth).Msg("no model store configured, using seeded ranker")
		return nil
	}

	r, err := s.store.Load(ctx)
	if errors.Is(err, ErrModelNotFound) {
		logging.Info().Int("hidden", s.cfg.HiddenWidth).Msg("no stored model, using seeded ranker")
		return nil
	}
	if err != nil {
		ModelStoreErrorsTotal.WithLabelValues("load").Inc()
		return fmt.Errorf("failed to load model: %w", err)
	}

	s.mu.Lock()
	s.ranker = r
	s.mu.Unlock()

	logging.Info().Int("hidden", r.Hidden()).Msg("loaded stored model")
	return nil
}

// Ranker returns a copy of the current parameters.
func (s *RecommenderService) Ranker() *recommend.Ranker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ranker.Clone()
}

// Recommend ranks the corpus for the request's intent.
func (s *RecommenderService) Recommend(ctx context.Context, req *types.RecommendRequest) (*types.RecommendResponse, error) {
	start := time.Now()

	corpus, liked, disliked, err := s.resolve(ctx, req.Liked, req.Disliked)
	if err != nil {
		RecordRecommend("error", 0, time.Since(start))
		return nil, err
	}

	intent := req.ToIntent()

	s.mu.RLock()
	scored := recommend.RecommendScored(corpus, intent, s.ranker, liked, disliked, intent.K, s.cfg.Options)
	s.mu.RUnlock()

	titles := make([]string, len(scored))
	scores := make([]float64, len(scored))
	for i, sc := range scored {
		titles[i] = sc.Recipe.Title
		scores[i] = sc.Score
	}

	records, err := s.corpus.Records(ctx, titles)
	if err != nil {
		RecordRecommend("error", 0, time.Since(start))
		return nil, err
	}

	outcome := "ok"
	if len(scored) == 0 {
		outcome = "empty"
	}
	RecordRecommend(outcome, len(scored), time.Since(start))

	logging.Debug().
		Int("corpus", len(corpus)).
		Int("liked", len(liked)).
		Int("disliked", len(disliked)).
		Int("k", intent.K).
		Int("returned", len(scored)).
		Dur("took", time.Since(start)).
		Msg("recommendation served")

	return &types.RecommendResponse{Recipes: records, Scores: scores}, nil
}

// Train fits the ranker to the liked and disliked recipes and persists the
// result when a store is configured.
func (s *RecommenderService) Train(ctx context.Context, req *types.TrainRequest) (*types.TrainResponse, error) {
	corpus, liked, disliked, err := s.resolve(ctx, req.Liked, req.Disliked)
	if err != nil {
		RecordTrain("error", 0, 0)
		return nil, err
	}

	if len(liked)+len(disliked) == 0 {
		RecordTrain("noop", 0, 0)
		logging.Info().Msg("train called without known feedback, skipping")
		return &types.TrainResponse{}, nil
	}

	intent := req.ToIntent()

	s.mu.Lock()
	result := recommend.Train(s.ranker, corpus, liked, disliked, intent, s.cfg.Train)
	snapshot := s.ranker.Clone()
	s.mu.Unlock()

	RecordTrain("ok", result.Examples, result.FinalLoss)
	logging.Info().
		Int("examples", result.Examples).
		Float64("initial_loss", result.InitialLoss).
		Float64("final_loss", result.FinalLoss).
		Msg("ranker trained")

	if s.store != nil {
		if err := s.store.Save(ctx, snapshot); err != nil {
			ModelStoreErrorsTotal.WithLabelValues("save").Inc()
			return nil, fmt.Errorf("failed to save model: %w", err)
		}
	}

	return &types.TrainResponse{TrainResult: result}, nil
}

func (s *RecommenderService) resolve(ctx context.Context, likedTitles, dislikedTitles []string) (corpus, liked, disliked []recommend.Recipe, err error) {
	corpus, err = s.corpus.Corpus(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(corpus) == 0 {
		return nil, nil, nil, ErrEmptyCorpus
	}
	if liked, err = s.corpus.FindByTitles(ctx, likedTitles); err != nil {
		return nil, nil, nil, err
	}
	if disliked, err = s.corpus.FindByTitles(ctx, dislikedTitles); err != nil {
		return nil, nil, nil, err
	}
	return corpus, liked, disliked, nil
}
