package stats

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger"
)

// Service exposes statistics reads to collaborators.
type Service struct {
	store       *Store
	ledgerStore *ledger.Store
	logger      *zap.Logger
}

// NewService creates a statistics service.
func NewService(db *gorm.DB, ledgerStore *ledger.Store, logger *zap.Logger) *Service {
	return &Service{store: NewStore(db), ledgerStore: ledgerStore, logger: logger}
}

// Store exposes the statistics store for the background tasks.
func (s *Service) Store() *Store {
	return s.store
}

// Migrate runs the statistics migrations.
func (s *Service) Migrate() error {
	return s.store.Migrate()
}

// Get returns the stat record for one user and category, or ErrNotFound when
// the user has no draws there.
func (s *Service) Get(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) (*StatRecord, error) {
	return s.store.Get(ctx, uid, game, category)
}

// GlobalCount returns the category's population size, the denominator for
// external percentile display.
func (s *Service) GlobalCount(ctx context.Context, game catalog.Game, category catalog.Category) (int64, error) {
	return s.ledgerStore.GlobalCount(ctx, game, category)
}
