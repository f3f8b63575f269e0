package catalog

// AchievementFlags describes visibility metadata for an achievement id.
type AchievementFlags struct {
	// Impossible marks achievements that can no longer be obtained.
	Impossible bool
	// Hidden marks achievements excluded from public listings.
	Hidden bool
}

// Achievement mutual-exclusion sets: for any user, at most one member of a set
// may be completed (or favorited) at a time. Typically the same milestone at
// different difficulty tiers.
var achievementSets = [][]int32{
	{101, 102, 103},
	{210, 211},
	{305, 306, 307, 308},
	{4101, 4102, 4103},
}

var achievementSetIndex = func() map[int32][]int32 {
	idx := make(map[int32][]int32)
	for _, set := range achievementSets {
		for _, id := range set {
			idx[id] = set
		}
	}
	return idx
}()

// Achievements flagged both impossible and hidden are invisible to
// non-administrators.
var achievementFlags = map[int32]AchievementFlags{
	103:  {Impossible: true},
	211:  {Impossible: true, Hidden: true},
	308:  {Hidden: true},
	4103: {Impossible: true, Hidden: true},
}

// AchievementSetFor returns the members of the mutual-exclusion set containing
// id, or nil when id belongs to no declared set.
func AchievementSetFor(id int32) []int32 {
	return achievementSetIndex[id]
}

// AchievementSiblings returns the other members of id's set, or nil.
func AchievementSiblings(id int32) []int32 {
	set := achievementSetIndex[id]
	if set == nil {
		return nil
	}
	siblings := make([]int32, 0, len(set)-1)
	for _, member := range set {
		if member != id {
			siblings = append(siblings, member)
		}
	}
	return siblings
}

// FlagsFor returns the visibility flags for id (zero value when unflagged).
func FlagsFor(id int32) AchievementFlags {
	return achievementFlags[id]
}

// VisibleToPublic reports whether the achievement may appear in non-admin
// listings.
func VisibleToPublic(id int32) bool {
	f := achievementFlags[id]
	return !(f.Impossible && f.Hidden)
}
