package achievement

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gacha-tracker/core/apperr"
	"gacha-tracker/feature/catalog"
)

// Store persists achievement facts and enforces the mutual-exclusion
// invariant on write.
type Store struct {
	db *gorm.DB
}

// NewStore creates an achievement store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the achievement tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Completion{}, &Favorite{})
}

// Mark records the fact and evicts the id's mutual-exclusion siblings, all in
// one transaction. The insert runs before the sibling eviction: evicting
// first would let a concurrent mark of a sibling leave two live members.
// Re-marking an already-marked achievement is a no-op, not an error.
func (s *Store) Mark(ctx context.Context, username string, id int32, kind Kind) error {
	siblings := catalog.AchievementSiblings(id)
	now := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{DoNothing: true})
		switch kind {
		case KindFavorite:
			if err := insert.Create(&Favorite{Username: username, AchievementID: id, MarkedAt: now}).Error; err != nil {
				return err
			}
			if len(siblings) == 0 {
				return nil
			}
			return tx.Where("username = ? AND achievement_id IN ?", username, siblings).
				Delete(&Favorite{}).Error
		default:
			if err := insert.Create(&Completion{Username: username, AchievementID: id, MarkedAt: now}).Error; err != nil {
				return err
			}
			if len(siblings) == 0 {
				return nil
			}
			return tx.Where("username = ? AND achievement_id IN ?", username, siblings).
				Delete(&Completion{}).Error
		}
	})
	if err != nil {
		return fmt.Errorf("%w: mark achievement: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

// Unmark deletes the single fact. It never touches siblings and deleting an
// absent fact is a no-op.
func (s *Store) Unmark(ctx context.Context, username string, id int32, kind Kind) error {
	query := s.db.WithContext(ctx).Where("username = ? AND achievement_id = ?", username, id)
	var err error
	switch kind {
	case KindFavorite:
		err = query.Delete(&Favorite{}).Error
	default:
		err = query.Delete(&Completion{}).Error
	}
	if err != nil {
		return fmt.Errorf("%w: unmark achievement: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

// List returns the user's marked achievement ids for one kind, ascending.
func (s *Store) List(ctx context.Context, username string, kind Kind) ([]int32, error) {
	var ids []int32
	query := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("achievement_id ASC")
	var err error
	switch kind {
	case KindFavorite:
		err = query.Model(&Favorite{}).Pluck("achievement_id", &ids).Error
	default:
		err = query.Model(&Completion{}).Pluck("achievement_id", &ids).Error
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list achievements: %v", apperr.ErrStoreUnavailable, err)
	}
	return ids, nil
}
