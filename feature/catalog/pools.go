package catalog

// Built-in standard pools per game. A top-rarity draw on a featured banner that
// lands an item from the standard pool counts as a loss ("lost the 50/50").
// The reference sync task can replace these at runtime when the upstream feed
// carries newer data; this table is the offline baseline.
var standardPools = map[Game][]int32{
	GameGenshin: {
		// characters
		10000003, 10000016, 10000035, 10000041, 10000042, 10000069, 10000079,
		// weapons
		11501, 11502, 12501, 12502, 13502, 13505, 14501, 14502, 15501, 15502,
	},
	GameStarRail: {
		// characters
		1003, 1004, 1101, 1104, 1107, 1209, 1211,
		// light cones
		23000, 23002, 23003, 23004, 23005, 23012, 23013,
	},
	GameZenless: {
		// agents
		1021, 1041, 1101, 1141, 1181, 1211,
		// w-engines
		14102, 14104, 14110, 14114, 14118, 14121,
	},
}

var poolIndex = func() map[Game]map[int32]struct{} {
	idx := make(map[Game]map[int32]struct{}, len(standardPools))
	for game, ids := range standardPools {
		set := make(map[int32]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		idx[game] = set
	}
	return idx
}()

// InStandardPool reports whether itemID belongs to the game's built-in
// standard pool.
func InStandardPool(game Game, itemID int32) bool {
	_, ok := poolIndex[game][itemID]
	return ok
}

// StandardPool returns the built-in standard pool ids for game.
func StandardPool(game Game) []int32 {
	return standardPools[game]
}
