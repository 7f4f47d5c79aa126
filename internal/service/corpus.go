package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pageza/chefcito/backend/internal/logging"
	"github.com/pageza/chefcito/backend/internal/model"
	"github.com/pageza/chefcito/backend/internal/recommend"
	"github.com/pageza/chefcito/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 500

// ImportResult reports what an import did
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// CorpusService loads the recipe corpus from the database and caches it.
// The corpus is static between reloads.
type CorpusService struct {
	db *gorm.DB

	mu      sync.RWMutex
	loaded  bool
	rows    []model.Recipe
	recipes []recommend.Recipe
	byTitle map[string]int
}

// NewCorpusService creates a new CorpusService instance
func NewCorpusService(db *gorm.DB) *CorpusService {
	return &CorpusService{db: db}
}

// Corpus returns the cached corpus in insertion order, loading it on first use.
func (s *CorpusService) Corpus(ctx context.Context) ([]recommend.Recipe, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]recommend.Recipe(nil), s.recipes...), nil
}

// Reload re-reads every recipe row.
func (s *CorpusService) Reload(ctx context.Context) error {
	var rows []model.Recipe
	if err := s.db.WithContext(ctx).Order("position ASC").Order("title ASC").Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	recipes := make([]recommend.Recipe, len(rows))
	byTitle := make(map[string]int, len(rows))
	for i, row := range rows {
		recipes[i] = row.ToRecipe()
		byTitle[row.Title] = i
	}

	s.mu.Lock()
	s.rows = rows
	s.recipes = recipes
	s.byTitle = byTitle
	s.loaded = true
	s.mu.Unlock()

	CorpusRecipes.Set(float64(len(rows)))
	logging.Info().Int("recipes", len(rows)).Msg("corpus loaded")
	return nil
}

// Import inserts records whose titles are not yet present. The first record
// with a given title wins; later ones are skipped.
func (s *CorpusService) Import(ctx context.Context, records []types.RecipeRecord) (*ImportResult, error) {
	result := &ImportResult{}

	seen := make(map[string]struct{}, len(records))
	fresh := make([]types.RecipeRecord, 0, len(records))
	for _, rec := range records {
		rec.Title = strings.TrimSpace(rec.Title)
		if rec.Title == "" {
			result.Skipped++
			continue
		}
		if _, dup := seen[rec.Title]; dup {
			result.Skipped++
			continue
		}
		seen[rec.Title] = struct{}{}
		fresh = append(fresh, rec)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&model.Recipe{}).Select("COALESCE(MAX(position), -1) + 1").Scan(&next).Error; err != nil {
			return fmt.Errorf("failed to read corpus position: %w", err)
		}

		for start := 0; start < len(fresh); start += importBatchSize {
			end := min(start+importBatchSize, len(fresh))
			rows := make([]model.Recipe, 0, end-start)
			for _, rec := range fresh[start:end] {
				rows = append(rows, model.NewRecipe(rec, next))
				next++
			}

			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "title"}},
				DoNothing: true,
			}).Create(&rows)
			if res.Error != nil {
				return fmt.Errorf("failed to insert recipes: %w", res.Error)
			}
			result.Imported += int(res.RowsAffected)
			result.Skipped += len(rows) - int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("recipes imported")

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByTitles resolves titles to corpus recipes in request order.
// Unknown and repeated titles are ignored.
func (s *CorpusService) FindByTitles(ctx context.Context, titles []string) ([]recommend.Recipe, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recommend.Recipe, 0, len(titles))
	seen := make(map[int]struct{}, len(titles))
	for _, title := range titles {
		idx, ok := s.byTitle[strings.TrimSpace(title)]
		if !ok {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, s.recipes[idx])
	}
	return out, nil
}

// Records returns the full records for the given titles, in order.
func (s *CorpusService) Records(ctx context.Context, titles []string) ([]types.RecipeRecord, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.RecipeRecord, 0, len(titles))
	for _, title := range titles {
		if idx, ok := s.byTitle[title]; ok {
			out = append(out, s.rows[idx].ToRecord())
		}
	}
	return out, nil
}

// List returns up to limit records in corpus order and the corpus size.
// A limit <= 0 lists everything.
func (s *CorpusService) List(ctx context.Context, limit int) ([]types.RecipeRecord, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	query := s.db.WithContext(ctx).Order("position ASC").Order("title ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []model.Recipe
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}

	records := make([]types.RecipeRecord, len(rows))
	for i, row := range rows {
		records[i] = row.ToRecord()
	}
	return records, total, nil
}

func (s *CorpusService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}
