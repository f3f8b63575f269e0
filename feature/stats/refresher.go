package stats

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger"
	"gacha-tracker/feature/ledger/models"
)

type watermarkKey struct {
	game     catalog.Game
	category catalog.Category
}

// ledgerSource is the slice of the ledger store the refresher reads.
type ledgerSource interface {
	Watermark(ctx context.Context, game catalog.Game, category catalog.Category) (ledger.Watermark, error)
	QueryCategory(ctx context.Context, game catalog.Game, category catalog.Category) ([]models.PullEvent, error)
}

// Refresher recomputes the whole statistics population on a fixed interval.
// Writers never coordinate with it: stats are allowed to be slightly stale
// relative to the freshest ingested pull.
type Refresher struct {
	ledgerStore ledgerSource
	statsStore  *Store
	logger      *zap.Logger
	interval    time.Duration

	// seen holds the per-category ledger watermark from the previous pass.
	// Task-local on purpose: the flag must not be shared across task
	// instances if the refresher is ever parallelized.
	seen map[watermarkKey]ledger.Watermark
}

// NewRefresher creates a statistics refresher.
func NewRefresher(ledgerStore ledgerSource, statsStore *Store, logger *zap.Logger, interval time.Duration) *Refresher {
	return &Refresher{
		ledgerStore: ledgerStore,
		statsStore:  statsStore,
		logger:      logger,
		interval:    interval,
		seen:        make(map[watermarkKey]ledger.Watermark),
	}
}

// Run executes refresh passes on the configured interval until ctx is
// cancelled. A failed pass is logged and retried on the next tick; it never
// blocks ingestion.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// One pass at startup so fresh deployments serve stats immediately.
	if err := r.RefreshAll(ctx); err != nil {
		r.logger.Error("Initial stats refresh failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RefreshAll(ctx); err != nil {
				r.logger.Error("Stats refresh failed", zap.Error(err))
			}
		}
	}
}

// RefreshAll recomputes every game/category whose ledger changed since the
// previous pass. A failing category is logged and skipped so the remaining
// categories still refresh; its watermark stays unrecorded, which retries it
// on the next pass. The aggregated error is returned for the caller's log.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	overlay, err := r.statsStore.LoadPoolOverlay(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, game := range catalog.Games() {
		for _, cat := range game.Categories {
			key := watermarkKey{game: game.Key, category: cat.Key}

			current, err := r.ledgerStore.Watermark(ctx, game.Key, cat.Key)
			if err != nil {
				r.logger.Error("Category watermark failed",
					zap.String("game", string(game.Key)),
					zap.String("category", string(cat.Key)),
					zap.Error(err),
				)
				errs = append(errs, err)
				continue
			}
			if prev, ok := r.seen[key]; ok && prev.Equal(current) {
				continue
			}

			if err := r.refreshCategory(ctx, game.Key, cat.Key, overlay); err != nil {
				r.logger.Error("Category stats refresh failed",
					zap.String("game", string(game.Key)),
					zap.String("category", string(cat.Key)),
					zap.Error(err),
				)
				errs = append(errs, err)
				continue
			}
			r.seen[key] = current
		}
	}
	return errors.Join(errs...)
}

// refreshCategory recomputes one category for the whole population: per-user
// metrics from the ordered ledger, then the full-population percentile pass,
// then a transactional swap of the category's records.
func (r *Refresher) refreshCategory(ctx context.Context, game catalog.Game, category catalog.Category, overlay map[string]map[int32]struct{}) error {
	events, err := r.ledgerStore.QueryCategory(ctx, game, category)
	if err != nil {
		return err
	}

	isStandard := standardLookup(overlay, game)
	now := time.Now()

	var records []*StatRecord
	forEachUser(events, func(uid int32, snapshot []models.PullEvent) {
		m := ComputeMetrics(game, category, snapshot, isStandard)
		records = append(records, &StatRecord{
			UID:        uid,
			Game:       string(game),
			Category:   string(category),
			Count:      m.Count,
			Luck4:      m.Luck4,
			Luck5:      m.Luck5,
			WinRate:    m.WinRate,
			WinStreak:  m.WinStreak,
			LossStreak: m.LossStreak,
			ComputedAt: now,
		})
	})

	applyPercentiles(records)

	if err := r.statsStore.ReplaceCategory(ctx, game, category, records); err != nil {
		return err
	}
	r.logger.Debug("Category stats refreshed",
		zap.String("game", string(game)),
		zap.String("category", string(category)),
		zap.Int("users", len(records)),
	)
	return nil
}

// forEachUser walks uid-contiguous event slices of a category snapshot that
// is ordered by uid first.
func forEachUser(events []models.PullEvent, fn func(uid int32, snapshot []models.PullEvent)) {
	start := 0
	for i := 1; i <= len(events); i++ {
		if i == len(events) || events[i].UID != events[start].UID {
			fn(events[start].UID, events[start:i])
			start = i
		}
	}
}
