// Package ledger implements the pull record store and reconciliation engine.
//
// Every pull a player makes is an immutable fact keyed by the upstream global
// id together with the player uid and category. Records arrive from two
// provenances: authoritative game-server exports (official) and user-submitted
// pages (community). The reconciliation rule is fixed: official replaces
// community, never the reverse, and a newer official import replaces an older
// one.
//
// # Precedence in the upsert
//
// The precedence rule lives inside UpsertBatch itself, expressed through
// ON CONFLICT clauses inside one transaction, so concurrent imports for the
// same uid cannot interleave into a lost update. Re-importing the same
// official export is idempotent.
//
// # Components
//
//   - Store: set-based batch upsert, ordered snapshot queries, scoped purges.
//   - BuildBatch: validation and normalization of raw import payloads.
//   - Service/Handler: orchestration and the HTTP collaborator surface.
//
// # HTTP Endpoints
//
//   - POST   /ledger/:game/:category/:uid/import : bulk import
//   - GET    /ledger/:game/:category/:uid : ordered snapshot
//   - GET    /ledger/:game/:category/:uid/summary : count and time boundaries
//   - DELETE /ledger/:game/:category/:uid[?unofficial=true] : purges
package ledger
