// Package profile caches provider profile documents in object storage, one
// envelope per player uid.
//
// The staleness policy is explicit-refresh-only: a cached entry is served no
// matter how old it is, and only POST refresh (or a cache miss) reaches the
// provider. Concurrent misses for the same uid collapse into a single
// provider fetch via singleflight. Provider failures surface whole; a stale
// entry is never substituted.
//
// # HTTP Endpoints
//
//   - GET    /profile/:uid : cached envelope, fetched on miss
//   - POST   /profile/:uid/refresh : force refetch and overwrite
//   - DELETE /profile/:uid : evict
package profile
