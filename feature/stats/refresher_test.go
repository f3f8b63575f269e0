package stats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gacha-tracker/core/database"
	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger"
	"gacha-tracker/feature/ledger/models"
	"gacha-tracker/feature/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func newTestStores(t *testing.T) (*ledger.Store, *stats.Store) {
	t.Helper()
	db := newTestDB(t)
	ledgerStore := ledger.NewStore(db)
	require.NoError(t, ledgerStore.Migrate())
	statsStore := stats.NewStore(db)
	require.NoError(t, statsStore.Migrate())
	return ledgerStore, statsStore
}

func userDraws(uid int32, firstGlobalID int64, rarities []int32) []models.PullEvent {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := make([]models.PullEvent, len(rarities))
	for i, rarity := range rarities {
		events[i] = models.PullEvent{
			GlobalID:   firstGlobalID + int64(i),
			UID:        uid,
			Game:       string(catalog.GameGenshin),
			Category:   string(catalog.CategoryCharacterEvent),
			ItemKind:   models.ItemKindCharacter,
			ItemID:     10000042,
			Rarity:     rarity,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Provenance: models.ProvenanceOfficial,
		}
	}
	return events
}

func TestRefresher_RefreshAll(t *testing.T) {
	ctx := context.Background()
	ledgerStore, statsStore := newTestStores(t)
	refresher := stats.NewRefresher(ledgerStore, statsStore, zap.NewNop(), time.Minute)

	// Three users with different pull counts in the same category.
	require.NoError(t, ledgerStore.UpsertBatch(ctx, userDraws(1, 1000, []int32{3, 3, 5})))
	require.NoError(t, ledgerStore.UpsertBatch(ctx, userDraws(2, 2000, []int32{3, 3, 3, 3, 5, 3})))
	require.NoError(t, ledgerStore.UpsertBatch(ctx, userDraws(3, 3000, []int32{3})))

	require.NoError(t, refresher.RefreshAll(ctx))

	first, err := statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.Count)
	assert.InDelta(t, 3.0, first.Luck5, 1e-9)

	second, err := statsStore.Get(ctx, 2, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Equal(t, int64(6), second.Count)
	assert.InDelta(t, 5.0, second.Luck5, 1e-9)

	third, err := statsStore.Get(ctx, 3, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Zero(t, third.Luck5)
	assert.Zero(t, third.Luck5Pct, "no rarity-5 hit keeps the user out of the luck ranking")

	// Count percentiles rank over all three users, ascending.
	assert.InDelta(t, 2.0/3.0, first.CountPct, 1e-9)
	assert.InDelta(t, 1.0, second.CountPct, 1e-9)
	assert.InDelta(t, 1.0/3.0, third.CountPct, 1e-9)
}

func TestRefresher_SkipsUnchangedCategories(t *testing.T) {
	ctx := context.Background()
	ledgerStore, statsStore := newTestStores(t)
	refresher := stats.NewRefresher(ledgerStore, statsStore, zap.NewNop(), time.Minute)

	require.NoError(t, ledgerStore.UpsertBatch(ctx, userDraws(1, 1000, []int32{3, 5})))
	require.NoError(t, refresher.RefreshAll(ctx))

	before, err := statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)

	// Nothing changed in the ledger: the second pass must leave the category
	// untouched instead of rewriting identical rows.
	require.NoError(t, refresher.RefreshAll(ctx))
	after, err := statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.True(t, after.ComputedAt.Equal(before.ComputedAt))

	// New pulls move the watermark and force a recompute.
	require.NoError(t, ledgerStore.UpsertBatch(ctx, userDraws(1, 1100, []int32{3, 3})))
	require.NoError(t, refresher.RefreshAll(ctx))
	recomputed, err := statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Equal(t, int64(4), recomputed.Count)
}

func TestRefresher_OfficialCorrectionRecomputes(t *testing.T) {
	ctx := context.Background()
	ledgerStore, statsStore := newTestStores(t)
	refresher := stats.NewRefresher(ledgerStore, statsStore, zap.NewNop(), time.Minute)

	// A community submission guessed a standard-pool item: the 5-star counts
	// as a lost 50/50.
	community := userDraws(1, 1000, []int32{3, 5})
	community[1].ItemID = 10000003 // standard pool
	for i := range community {
		community[i].Provenance = models.ProvenanceCommunity
	}
	require.NoError(t, ledgerStore.UpsertBatch(ctx, community))
	require.NoError(t, refresher.RefreshAll(ctx))

	before, err := statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Zero(t, before.WinRate)

	// The official export corrects the same global id to a featured item.
	// Ids and row count are unchanged; only the content differs.
	official := userDraws(1, 1000, []int32{3, 5})
	official[1].ItemID = 10000089 // featured, not in the standard pool
	require.NoError(t, ledgerStore.UpsertBatch(ctx, official))
	require.NoError(t, refresher.RefreshAll(ctx))

	after, err := statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, after.WinRate, 1e-9, "corrected ledger content must reach the stats on the next pass")
	assert.Equal(t, int32(1), after.WinStreak)
}

// flakyLedger delegates to the real store but fails one category on demand.
type flakyLedger struct {
	*ledger.Store
	failGame catalog.Game
	failCat  catalog.Category
	failing  bool
}

func (f *flakyLedger) QueryCategory(ctx context.Context, game catalog.Game, category catalog.Category) ([]models.PullEvent, error) {
	if f.failing && game == f.failGame && category == f.failCat {
		return nil, errors.New("query timeout")
	}
	return f.Store.QueryCategory(ctx, game, category)
}

func TestRefresher_FailingCategoryDoesNotStarveOthers(t *testing.T) {
	ctx := context.Background()
	ledgerStore, statsStore := newTestStores(t)
	flaky := &flakyLedger{
		Store:    ledgerStore,
		failGame: catalog.GameGenshin,
		failCat:  catalog.CategoryCharacterEvent,
		failing:  true,
	}
	refresher := stats.NewRefresher(flaky, statsStore, zap.NewNop(), time.Minute)

	require.NoError(t, ledgerStore.UpsertBatch(ctx, userDraws(1, 1000, []int32{3, 5})))
	starrail := userDraws(2, 2000, []int32{3, 5})
	for i := range starrail {
		starrail[i].Game = string(catalog.GameStarRail)
	}
	require.NoError(t, ledgerStore.UpsertBatch(ctx, starrail))

	// Genshin (iterated first) fails; starrail must still refresh.
	err := refresher.RefreshAll(ctx)
	require.Error(t, err)

	_, err = statsStore.Get(ctx, 2, catalog.GameStarRail, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	_, err = statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.Error(t, err)

	// The failed category's watermark was not recorded, so the next pass
	// retries it once the store recovers.
	flaky.failing = false
	require.NoError(t, refresher.RefreshAll(ctx))
	record, err := statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)
	assert.Equal(t, int64(2), record.Count)
}

func TestRefresher_UserWithDeletedPullsDropsOut(t *testing.T) {
	ctx := context.Background()
	ledgerStore, statsStore := newTestStores(t)
	refresher := stats.NewRefresher(ledgerStore, statsStore, zap.NewNop(), time.Minute)

	require.NoError(t, ledgerStore.UpsertBatch(ctx, userDraws(1, 1000, []int32{3, 5})))
	require.NoError(t, refresher.RefreshAll(ctx))
	_, err := statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	require.NoError(t, err)

	require.NoError(t, ledgerStore.DeleteAll(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent))
	require.NoError(t, refresher.RefreshAll(ctx))

	_, err = statsStore.Get(ctx, 1, catalog.GameGenshin, catalog.CategoryCharacterEvent)
	assert.Error(t, err, "a purged user has no stat record, not a zeroed one")
}
