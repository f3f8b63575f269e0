// Package catalog declares the static game metadata every feature relies on.
//
// It covers three concerns:
//
//   - Games and their pull categories, including which categories carry the
//     featured-guarantee mechanic and the game's top rarity.
//   - Standard pools: the item ids that decide win/loss classification of a
//     top-rarity draw on a featured banner.
//   - Achievement metadata: mutual-exclusion sets and visibility flags.
//
// The catalog is pure data with lookup helpers; it holds no state and touches
// no storage. The stats reference sync can overlay fresher standard-pool data
// at runtime, with this package as the offline baseline.
package catalog
