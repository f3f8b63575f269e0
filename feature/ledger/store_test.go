package ledger_test

import (
	"context"
	"testing"
	"time"

	"gacha-tracker/core/database"
	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger"
	"gacha-tracker/feature/ledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ledger.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	store := ledger.NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func event(globalID int64, uid int32, provenance models.Provenance, rarity int32, ts time.Time) models.PullEvent {
	return models.PullEvent{
		GlobalID:   globalID,
		UID:        uid,
		Game:       string(catalog.GameGenshin),
		Category:   string(catalog.CategoryCharacterEvent),
		ItemKind:   models.ItemKindCharacter,
		ItemID:     10000042,
		Rarity:     rarity,
		Timestamp:  ts,
		Provenance: provenance,
	}
}

func TestUpsertBatch_Idempotence(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	batch := []models.PullEvent{
		event(1001, 7, models.ProvenanceOfficial, 3, base),
		event(1002, 7, models.ProvenanceOfficial, 4, base.Add(time.Minute)),
		event(1003, 7, models.ProvenanceOfficial, 5, base.Add(2*time.Minute)),
	}

	require.NoError(t, store.UpsertBatch(ctx, batch))
	require.NoError(t, store.UpsertBatch(ctx, batch))

	events, err := store.QueryByUID(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Len(t, events, 3, "re-importing the same official batch must not duplicate records")
}

func TestUpsertBatch_ProvenancePrecedence(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Official Overwrites Community", func(t *testing.T) {
		store := newTestStore(t)

		community := event(2001, 7, models.ProvenanceCommunity, 4, base)
		community.ItemID = 11111 // community guessed the wrong item

		official := event(2001, 7, models.ProvenanceOfficial, 4, base)
		official.ItemID = 22222

		require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{community}))
		require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{official}))

		events, err := store.QueryByUID(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, models.ProvenanceOfficial, events[0].Provenance)
		assert.Equal(t, int32(22222), events[0].ItemID)
	})

	t.Run("Community Never Overwrites Official", func(t *testing.T) {
		store := newTestStore(t)

		official := event(2001, 7, models.ProvenanceOfficial, 4, base)
		official.ItemID = 22222

		community := event(2001, 7, models.ProvenanceCommunity, 4, base)
		community.ItemID = 11111

		require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{official}))
		require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{community}))

		events, err := store.QueryByUID(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, models.ProvenanceOfficial, events[0].Provenance)
		assert.Equal(t, int32(22222), events[0].ItemID, "precedence must be order-independent")
	})

	t.Run("Newer Official Beats Older Official", func(t *testing.T) {
		store := newTestStore(t)

		older := event(2001, 7, models.ProvenanceOfficial, 4, base)
		older.ItemID = 1
		newer := event(2001, 7, models.ProvenanceOfficial, 4, base)
		newer.ItemID = 2

		require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{older}))
		require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{newer}))

		events, err := store.QueryByUID(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, int32(2), events[0].ItemID)
	})
}

func TestQueryByUID_Ordering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	batch := []models.PullEvent{
		event(3003, 7, models.ProvenanceOfficial, 3, base.Add(2*time.Hour)),
		event(3001, 7, models.ProvenanceOfficial, 3, base),
		event(3002, 7, models.ProvenanceOfficial, 3, base.Add(time.Hour)),
	}
	require.NoError(t, store.UpsertBatch(ctx, batch))

	events, err := store.QueryByUID(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, int64(3001), events[0].GlobalID)
	assert.Equal(t, int64(3002), events[1].GlobalID)
	assert.Equal(t, int64(3003), events[2].GlobalID)
}

func TestDeleteScoping(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	batch := []models.PullEvent{
		event(4001, 7, models.ProvenanceOfficial, 3, base),
		event(4002, 7, models.ProvenanceCommunity, 3, base.Add(time.Minute)),
		event(4003, 7, models.ProvenanceCommunity, 4, base.Add(2*time.Minute)),
	}
	require.NoError(t, store.UpsertBatch(ctx, batch))

	// Unofficial purge removes only community records.
	require.NoError(t, store.DeleteUnofficial(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent))
	events, err := store.QueryByUID(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.ProvenanceOfficial, events[0].Provenance)

	// Full purge removes everything regardless of provenance.
	require.NoError(t, store.DeleteAll(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent))
	events, err = store.QueryByUID(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBoundariesAndCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Empty Ledger", func(t *testing.T) {
		earliest, err := store.Earliest(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		assert.Nil(t, earliest)

		latest, err := store.Latest(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		assert.Nil(t, latest)

		count, err := store.Count(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Populated Ledger", func(t *testing.T) {
		require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{
			event(5001, 7, models.ProvenanceOfficial, 3, base),
			event(5002, 7, models.ProvenanceOfficial, 3, base.Add(48*time.Hour)),
			event(5003, 9, models.ProvenanceOfficial, 3, base.Add(time.Hour)),
		}))

		earliest, err := store.Earliest(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		require.NotNil(t, earliest)
		assert.True(t, earliest.Equal(base))

		latest, err := store.Latest(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.True(t, latest.Equal(base.Add(48*time.Hour)))

		count, err := store.Count(ctx, 7, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		global, err := store.GlobalCount(ctx, catalog.GameGenshin, catalog.CategoryCharacterEvent)
		require.NoError(t, err)
		assert.Equal(t, int64(2), global, "global count is distinct users, not rows")
	})
}

func TestWatermark(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mark, err := store.Watermark(ctx, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Zero(t, mark.MaxGlobalID)
	assert.Zero(t, mark.Rows)
	assert.True(t, mark.LastWrite.IsZero())

	require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{
		event(6001, 7, models.ProvenanceCommunity, 3, base),
		event(6009, 7, models.ProvenanceCommunity, 3, base.Add(time.Minute)),
	}))

	mark, err = store.Watermark(ctx, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Equal(t, int64(6009), mark.MaxGlobalID)
	assert.Equal(t, int64(2), mark.Rows)
	assert.False(t, mark.LastWrite.IsZero())
}

func TestWatermark_SeesInPlaceOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	community := event(6001, 7, models.ProvenanceCommunity, 4, base)
	community.ItemID = 11111
	require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{community}))

	before, err := store.Watermark(ctx, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)

	// A repeated community submission changes nothing, so the watermark must
	// not move and trigger pointless recomputes.
	require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{community}))
	unchanged, err := store.Watermark(ctx, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.True(t, unchanged.Equal(before))

	// An official export correcting the same global id keeps id and count
	// identical; only the last write time can reveal the overwrite.
	official := event(6001, 7, models.ProvenanceOfficial, 4, base)
	official.ItemID = 22222
	require.NoError(t, store.UpsertBatch(ctx, []models.PullEvent{official}))

	after, err := store.Watermark(ctx, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Equal(t, before.MaxGlobalID, after.MaxGlobalID)
	assert.Equal(t, before.Rows, after.Rows)
	assert.False(t, after.Equal(before), "official overwrite must move the watermark")
}
