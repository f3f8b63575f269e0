// Package stats implements the statistics engine: per-user luck and streak
// metrics plus global percentiles, recomputed in the background.
//
// Reads never compute. The Refresher task periodically rebuilds every stat
// record for a category in one transactional swap, skipping categories whose
// ledger watermark has not moved. Percentiles are therefore a frozen
// point-in-time global rank, not a live value.
//
// # Metrics
//
//   - luck_4 / luck_5: mean draws consumed per rarity-4/5 hit.
//   - win_rate, win_streak, loss_streak: featured-guarantee categories only;
//     a top-rarity standard-pool item counts as a loss.
//   - percentiles: 1-based ascending rank over the category population.
//
// The standard-pool classifier starts from the catalog baseline and is
// overridden per game by the reference feed overlay kept current by
// ReferenceSyncer.
//
// # HTTP Endpoints
//
//   - GET /stats/:game/:category/:uid : one user's stat record
//   - GET /stats/:game/:category/population : population size
package stats
