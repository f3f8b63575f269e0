package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	"gacha-tracker/core/apperr"
	"gacha-tracker/core/storage"
)

// Envelope wraps one cached provider document with its fetch metadata. The
// document body belongs to the provider and is never interpreted here.
type Envelope struct {
	UID       int32           `json:"uid"`
	FetchedAt time.Time       `json:"fetched_at"`
	Document  json.RawMessage `json:"document"`
}

// Cache stores one envelope per uid as an object in the configured bucket.
type Cache struct {
	client storage.Client
	bucket string
}

// NewCache creates a profile cache on top of the storage client.
func NewCache(client storage.Client, bucket string) *Cache {
	return &Cache{client: client, bucket: bucket}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (c *Cache) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("%w: bucket check: %v", apperr.ErrStoreUnavailable, err)
	}
	if exists {
		return nil
	}
	if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%w: bucket create: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

func objectKey(uid int32) string {
	return fmt.Sprintf("%d.json", uid)
}

// Load reads the envelope for uid, or ErrNotFound when no document has been
// cached yet.
func (c *Cache) Load(ctx context.Context, uid int32) (*Envelope, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, objectKey(uid), minio.GetObjectOptions{})
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: profile for uid %d", apperr.ErrNotFound, uid)
		}
		return nil, fmt.Errorf("%w: profile read: %v", apperr.ErrStoreUnavailable, err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: profile read: %v", apperr.ErrStoreUnavailable, err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: corrupt profile envelope: %v", apperr.ErrStoreUnavailable, err)
	}
	return &env, nil
}

// Store overwrites the envelope for env.UID.
func (c *Cache) Store(ctx context.Context, env *Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode profile envelope: %w", err)
	}
	_, err = c.client.PutObject(ctx, c.bucket, objectKey(env.UID),
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("%w: profile write: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the cached envelope for uid. Missing objects are a no-op.
func (c *Cache) Delete(ctx context.Context, uid int32) error {
	if err := c.client.RemoveObject(ctx, c.bucket, objectKey(uid), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: profile delete: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}
