package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gacha-tracker/core/apperr"
	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger/models"
)

// upsertBatchSize bounds a single INSERT statement; full history imports can
// carry tens of thousands of records.
const upsertBatchSize = 1000

// pullKeyColumns is the idempotency key of a pull event.
var pullKeyColumns = []clause.Column{
	{Name: "global_id"},
	{Name: "uid"},
	{Name: "game"},
	{Name: "category"},
}

// Store is the durable pull record store.
type Store struct {
	db *gorm.DB
}

// NewStore creates a pull record store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the pull_events table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&models.PullEvent{})
}

// UpsertBatch merges a batch of pull events in one transaction. Provenance
// precedence is expressed in the upsert itself, not as read-modify-write:
// official rows overwrite whatever is stored (newer official beats older),
// community rows never overwrite an existing record. The whole batch commits
// or rolls back as a unit.
func (s *Store) UpsertBatch(ctx context.Context, events []models.PullEvent) error {
	if len(events) == 0 {
		return nil
	}

	var official, community []models.PullEvent
	for _, e := range events {
		if e.Provenance == models.ProvenanceOfficial {
			official = append(official, e)
		} else {
			community = append(community, e)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(official) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   pullKeyColumns,
				UpdateAll: true,
			}).CreateInBatches(official, upsertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(community) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   pullKeyColumns,
				DoNothing: true,
			}).CreateInBatches(community, upsertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: upsert batch: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

// QueryByUID returns the ledger snapshot for one user and category, ordered by
// timestamp (global id as tiebreak, matching upstream draw order).
func (s *Store) QueryByUID(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) ([]models.PullEvent, error) {
	var events []models.PullEvent
	err := s.db.WithContext(ctx).
		Where("uid = ? AND game = ? AND category = ?", uid, game, category).
		Order("timestamp ASC, global_id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: query ledger: %v", apperr.ErrStoreUnavailable, err)
	}
	return events, nil
}

// QueryCategory returns every event of one game/category ordered by uid then
// draw order. The statistics refresher consumes this in a single pass.
func (s *Store) QueryCategory(ctx context.Context, game catalog.Game, category catalog.Category) ([]models.PullEvent, error) {
	var events []models.PullEvent
	err := s.db.WithContext(ctx).
		Where("game = ? AND category = ?", game, category).
		Order("uid ASC, timestamp ASC, global_id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: query category: %v", apperr.ErrStoreUnavailable, err)
	}
	return events, nil
}

// DeleteAll removes every record for the user in the category, regardless of
// provenance.
func (s *Store) DeleteAll(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) error {
	err := s.db.WithContext(ctx).
		Where("uid = ? AND game = ? AND category = ?", uid, game, category).
		Delete(&models.PullEvent{}).Error
	if err != nil {
		return fmt.Errorf("%w: delete all: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteUnofficial removes only community-provenance records for the user in
// the category. Used when a user re-imports authoritative data and wants prior
// guesses purged.
func (s *Store) DeleteUnofficial(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) error {
	err := s.db.WithContext(ctx).
		Where("uid = ? AND game = ? AND category = ? AND provenance = ?",
			uid, game, category, models.ProvenanceCommunity).
		Delete(&models.PullEvent{}).Error
	if err != nil {
		return fmt.Errorf("%w: delete unofficial: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

// Earliest returns the timestamp of the user's first recorded pull, or nil
// when the ledger is empty.
func (s *Store) Earliest(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) (*time.Time, error) {
	return s.boundary(ctx, uid, game, category, "MIN(timestamp)")
}

// Latest returns the timestamp of the user's most recent recorded pull, or
// nil when the ledger is empty.
func (s *Store) Latest(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) (*time.Time, error) {
	return s.boundary(ctx, uid, game, category, "MAX(timestamp)")
}

func (s *Store) boundary(ctx context.Context, uid int32, game catalog.Game, category catalog.Category, agg string) (*time.Time, error) {
	var ts sql.NullTime
	err := s.db.WithContext(ctx).
		Model(&models.PullEvent{}).
		Select(agg).
		Where("uid = ? AND game = ? AND category = ?", uid, game, category).
		Scan(&ts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: ledger boundary: %v", apperr.ErrStoreUnavailable, err)
	}
	if !ts.Valid {
		return nil, nil
	}
	t := ts.Time
	return &t, nil
}

// Count returns the number of records for the user in the category.
func (s *Store) Count(ctx context.Context, uid int32, game catalog.Game, category catalog.Category) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.PullEvent{}).
		Where("uid = ? AND game = ? AND category = ?", uid, game, category).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", apperr.ErrStoreUnavailable, err)
	}
	return count, nil
}

// GlobalCount returns the number of distinct users with records in the
// category, the denominator for percentile display.
func (s *Store) GlobalCount(ctx context.Context, game catalog.Game, category catalog.Category) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.PullEvent{}).
		Where("game = ? AND category = ?", game, category).
		Distinct("uid").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: global count: %v", apperr.ErrStoreUnavailable, err)
	}
	return count, nil
}

// Watermark summarizes one category's ledger for change detection. Id and
// count alone are blind to the reconciliation flow where an official export
// overwrites community guesses in place (same global ids, same row count,
// corrected content), so the last write time is part of the summary: official
// overwrites bump updated_at while community no-op inserts do not.
type Watermark struct {
	MaxGlobalID int64
	Rows        int64
	LastWrite   time.Time
}

// Equal reports whether two watermarks describe the same ledger state.
func (w Watermark) Equal(o Watermark) bool {
	return w.MaxGlobalID == o.MaxGlobalID && w.Rows == o.Rows && w.LastWrite.Equal(o.LastWrite)
}

// Watermark returns the category's current watermark. The statistics
// refresher uses it to skip categories that have not changed since the
// previous pass.
func (s *Store) Watermark(ctx context.Context, game catalog.Game, category catalog.Category) (Watermark, error) {
	var result struct {
		MaxID     sql.NullInt64
		RowCount  int64
		LastWrite sql.NullTime
	}
	err := s.db.WithContext(ctx).
		Model(&models.PullEvent{}).
		Select("MAX(global_id) AS max_id, COUNT(*) AS row_count, MAX(updated_at) AS last_write").
		Where("game = ? AND category = ?", game, category).
		Scan(&result).Error
	if err != nil {
		return Watermark{}, fmt.Errorf("%w: watermark: %v", apperr.ErrStoreUnavailable, err)
	}
	return Watermark{
		MaxGlobalID: result.MaxID.Int64,
		Rows:        result.RowCount,
		LastWrite:   result.LastWrite.Time,
	}, nil
}
