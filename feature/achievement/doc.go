// Package achievement maintains per-user completion and favorite facts under
// a mutual-exclusion invariant: for any declared achievement set, a user holds
// at most one member at a time.
//
// The invariant is enforced at write time inside one transaction: Mark
// idempotently inserts the fact, then deletes the set's other members for the
// same user. Insert-before-evict is load-bearing; the reverse order lets
// concurrent sibling marks both survive. Unmark removes a single fact and
// never touches siblings.
//
// Listings filter achievements flagged impossible and hidden unless the
// request carries the admin key.
//
// # HTTP Endpoints
//
//   - POST /achievements/:username/:id : mark or unmark (body: kind, op)
//   - GET  /achievements/:username : completions and favorites
package achievement
