package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"gacha-tracker/core/apperr"
	"gacha-tracker/core/logger"
	"gacha-tracker/core/storage"
	"gacha-tracker/core/upstream"
)

// Service serves provider profile documents through the refresh-on-miss
// cache.
type Service struct {
	cache    *Cache
	upstream upstream.Client
	logger   *zap.Logger

	// group collapses concurrent cache misses for the same uid into a single
	// provider fetch.
	group singleflight.Group
}

// NewService creates a profile service.
func NewService(storageClient storage.Client, bucket string, upstreamClient upstream.Client, logger *zap.Logger) *Service {
	return &Service{
		cache:    NewCache(storageClient, bucket),
		upstream: upstreamClient,
		logger:   logger,
	}
}

// EnsureBucket prepares the backing bucket.
func (s *Service) EnsureBucket(ctx context.Context) error {
	return s.cache.EnsureBucket(ctx)
}

// Get returns the cached envelope for uid, refreshing on a miss. A present
// entry is served regardless of age; only an explicit Refresh replaces it.
func (s *Service) Get(ctx context.Context, uid int32) (*Envelope, error) {
	env, err := s.cache.Load(ctx, uid)
	if err == nil {
		return env, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	// The flight's result is shared by every collapsed caller, so it must not
	// die with whichever request happened to start it: run the fetch on a
	// context detached from that caller's cancellation.
	result, err, _ := s.group.Do(strconv.FormatInt(int64(uid), 10), func() (interface{}, error) {
		return s.Refresh(context.WithoutCancel(ctx), uid)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Envelope), nil
}

// Refresh fetches the document from the provider and overwrites the cached
// envelope. Provider failures surface whole; a stale entry is never served in
// their place.
func (s *Service) Refresh(ctx context.Context, uid int32) (*Envelope, error) {
	raw, err := s.upstream.FetchProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: provider returned an invalid document for uid %d", apperr.ErrUpstreamUnavailable, uid)
	}

	env := &Envelope{
		UID:       uid,
		FetchedAt: time.Now().UTC(),
		Document:  json.RawMessage(raw),
	}
	if err := s.cache.Store(ctx, env); err != nil {
		return nil, err
	}
	logger.WithUID(s.logger, uid).Debug("Profile refreshed")
	return env, nil
}

// Evict drops the cached envelope so the next Get refetches.
func (s *Service) Evict(ctx context.Context, uid int32) error {
	return s.cache.Delete(ctx, uid)
}
