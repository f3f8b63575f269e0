// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the profile cache needs: one addressable JSON document per player
// uid, read and written as an opaque blob. The abstraction supports both AWS S3
// and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easy to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket lifecycle at startup.
//   - PutObject: overwrite the cached document for a uid.
//   - GetObject: retrieve the cached document; missing keys return
//     ErrObjectNotFound so callers can distinguish a cache miss from a failure.
//   - RemoveObject: drop a cached document.
package storage
