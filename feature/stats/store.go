package stats

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gacha-tracker/core/apperr"
	"gacha-tracker/feature/catalog"
)

// Store persists stat records and the reference pool overlay.
type Store struct {
	db *gorm.DB
}

// NewStore creates a statistics store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the statistics tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&StatRecord{}, &ReferencePoolItem{})
}

// Get returns the stat record for one user and category, or ErrNotFound.
// Absence means the user has no draws in the category; callers must treat
// "absent" and "zero" as distinct.
func (s *Store) Get(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) (*StatRecord, error) {
	var record StatRecord
	err := s.db.WithContext(ctx).
		Where("uid = ? AND game = ? AND category = ?", uid, game, category).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: stats for uid %d in %s/%s", apperr.ErrNotFound, uid, game, category)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get stats: %v", apperr.ErrStoreUnavailable, err)
	}
	return &record, nil
}

// ReplaceCategory swaps the whole category's stat records in one transaction.
// The refresh pass is wholesale, never incremental.
func (s *Store) ReplaceCategory(ctx context.Context, game catalog.Game, category catalog.Category, records []*StatRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game = ? AND category = ?", game, category).
			Delete(&StatRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 500).Error
	})
	if err != nil {
		return fmt.Errorf("%w: replace stats: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

// ReplacePoolOverlay swaps the reference pool overlay in one transaction.
func (s *Store) ReplacePoolOverlay(ctx context.Context, items []ReferencePoolItem) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ReferencePoolItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 500).Error
	})
	if err != nil {
		return fmt.Errorf("%w: replace pool overlay: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

// LoadPoolOverlay returns the reference pool overlay grouped by game. An
// empty map means the sync has not run yet and the catalog baseline applies.
func (s *Store) LoadPoolOverlay(ctx context.Context) (map[string]map[int32]struct{}, error) {
	var items []ReferencePoolItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: load pool overlay: %v", apperr.ErrStoreUnavailable, err)
	}
	overlay := make(map[string]map[int32]struct{})
	for _, item := range items {
		set, ok := overlay[item.Game]
		if !ok {
			set = make(map[int32]struct{})
			overlay[item.Game] = set
		}
		set[item.ItemID] = struct{}{}
	}
	return overlay, nil
}

// standardLookup builds the per-game classifier: overlay rows win when the
// sync has populated them, otherwise the catalog baseline decides.
func standardLookup(overlay map[string]map[int32]struct{}, game catalog.Game) func(itemID int32) bool {
	if set, ok := overlay[string(game)]; ok && len(set) > 0 {
		return func(itemID int32) bool {
			_, in := set[itemID]
			return in
		}
	}
	return func(itemID int32) bool {
		return catalog.InStandardPool(game, itemID)
	}
}
