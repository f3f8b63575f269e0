package stats

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gacha-tracker/core/upstream"
	"gacha-tracker/feature/catalog"
)

// referenceEntry mirrors one element of the upstream reference feed.
type referenceEntry struct {
	Game         string  `json:"game"`
	StandardPool []int32 `json:"standard_pool"`
}

// ReferenceSyncer keeps the standard-pool overlay in sync with the upstream
// reference feed on a fixed interval.
type ReferenceSyncer struct {
	client     upstream.Client
	statsStore *Store
	logger     *zap.Logger
	interval   time.Duration

	// lastDigest is the content hash of the previously applied feed. It is a
	// single-owner cache of "did the last pull change anything", scoped to
	// this task instance only.
	lastDigest [sha256.Size]byte
	applied    bool
}

// NewReferenceSyncer creates a reference feed sync task.
func NewReferenceSyncer(client upstream.Client, statsStore *Store, logger *zap.Logger, interval time.Duration) *ReferenceSyncer {
	return &ReferenceSyncer{
		client:     client,
		statsStore: statsStore,
		logger:     logger,
		interval:   interval,
	}
}

// Run syncs on the configured interval until ctx is cancelled. Failures are
// logged and retried next tick.
func (s *ReferenceSyncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.SyncOnce(ctx); err != nil {
		s.logger.Warn("Initial reference sync failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				s.logger.Warn("Reference sync failed", zap.Error(err))
			}
		}
	}
}

// SyncOnce fetches the feed and replaces the overlay unless the content is
// unchanged since the last applied sync.
func (s *ReferenceSyncer) SyncOnce(ctx context.Context) error {
	raw, err := s.client.FetchReference(ctx)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(raw)
	if s.applied && digest == s.lastDigest {
		return nil
	}

	var entries []referenceEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("invalid reference feed: %w", err)
	}

	var items []ReferencePoolItem
	for _, entry := range entries {
		if !catalog.ValidGame(catalog.Game(entry.Game)) {
			s.logger.Warn("Reference feed names unknown game", zap.String("game", entry.Game))
			continue
		}
		for _, id := range entry.StandardPool {
			items = append(items, ReferencePoolItem{Game: entry.Game, ItemID: id})
		}
	}

	if err := s.statsStore.ReplacePoolOverlay(ctx, items); err != nil {
		return err
	}

	s.lastDigest = digest
	s.applied = true
	s.logger.Info("Reference pool overlay updated", zap.Int("items", len(items)))
	return nil
}
