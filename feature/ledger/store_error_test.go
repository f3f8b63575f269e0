package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gacha-tracker/core/apperr"
	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger"
	"gacha-tracker/feature/ledger/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockStore backs the store with sqlmock so database failures can be
// injected.
func newMockStore(t *testing.T) (*ledger.Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return ledger.NewStore(db), mock
}

func TestStore_DatabaseFailuresMapToStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	t.Run("Query", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT").WillReturnError(dbErr)

		_, err := store.QueryByUID(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	})

	t.Run("Count", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT").WillReturnError(dbErr)

		_, err := store.GlobalCount(ctx, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	})

	t.Run("Upsert Rolls Back", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT").WillReturnError(dbErr)
		mock.ExpectRollback()

		batch := []models.PullEvent{{
			GlobalID:   1001,
			UID:        7,
			Game:       string(catalog.GameGenshin),
			Category:   string(catalog.CategoryCharacterEvent),
			ItemKind:   models.ItemKindCharacter,
			ItemID:     10000042,
			Rarity:     3,
			Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Provenance: models.ProvenanceOfficial,
		}}
		err := store.UpsertBatch(ctx, batch)
		assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
