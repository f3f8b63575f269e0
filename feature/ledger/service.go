package ledger

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger/models"
)

// Service handles ledger operations: ingestion, reads and purges.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new ledger service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{store: NewStore(db), logger: logger}
}

// Store exposes the underlying pull record store for the statistics engine.
func (s *Service) Store() *Store {
	return s.store
}

// Migrate runs the ledger migrations.
func (s *Service) Migrate() error {
	return s.store.Migrate()
}

// Ingest normalizes a raw import and merges it into the store. Returns the
// number of records the batch carried after in-batch deduplication.
func (s *Service) Ingest(ctx context.Context, imp Import) (int, error) {
	batch, err := BuildBatch(imp)
	if err != nil {
		return 0, err
	}
	if err := s.store.UpsertBatch(ctx, batch); err != nil {
		return 0, err
	}
	s.logger.Info("Ledger batch ingested",
		zap.Int32("uid", imp.UID),
		zap.String("game", string(imp.Game)),
		zap.String("category", string(imp.Category)),
		zap.String("provenance", imp.Provenance.String()),
		zap.Int("records", len(batch)),
	)
	return len(batch), nil
}

// Ledger returns the ordered snapshot for one user and category. Only item ids
// are stored; display names are resolved by the i18n collaborator.
func (s *Service) Ledger(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) ([]models.PullEvent, error) {
	return s.store.QueryByUID(ctx, uid, game, category)
}

// Summary describes the boundaries of one user's ledger in a category.
type Summary struct {
	Count    int64      `json:"count"`
	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`
}

// Summarize returns count and time boundaries for one user and category.
func (s *Service) Summarize(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) (*Summary, error) {
	count, err := s.store.Count(ctx, uid, game, category)
	if err != nil {
		return nil, err
	}
	earliest, err := s.store.Earliest(ctx, uid, game, category)
	if err != nil {
		return nil, err
	}
	latest, err := s.store.Latest(ctx, uid, game, category)
	if err != nil {
		return nil, err
	}
	return &Summary{Count: count, Earliest: earliest, Latest: latest}, nil
}

// Purge removes the user's records in a category. With unofficialOnly set,
// only community-provenance records are removed; the outer orchestrator calls
// this once per category of a game.
func (s *Service) Purge(ctx context.Context, uid int32, game catalog.Game, category catalog.Category, unofficialOnly bool) error {
	var err error
	if unofficialOnly {
		err = s.store.DeleteUnofficial(ctx, uid, game, category)
	} else {
		err = s.store.DeleteAll(ctx, uid, game, category)
	}
	if err != nil {
		return err
	}
	s.logger.Info("Ledger purged",
		zap.Int32("uid", uid),
		zap.String("game", string(game)),
		zap.String("category", string(category)),
		zap.Bool("unofficial_only", unofficialOnly),
	)
	return nil
}
