package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(uid int32, count int64, luck5 float64) *StatRecord {
	return &StatRecord{UID: uid, Game: "genshin", Category: "character_event", Count: count, Luck5: luck5}
}

func TestApplyPercentiles_CountMonotonic(t *testing.T) {
	records := []*StatRecord{
		record(1, 500, 60),
		record(2, 120, 80),
		record(3, 900, 70),
		record(4, 120, 55),
	}

	applyPercentiles(records)

	byUID := map[int32]*StatRecord{}
	for _, r := range records {
		byUID[r.UID] = r
	}

	assert.InDelta(t, 1.0, byUID[3].CountPct, 1e-9, "largest count ranks last, percentile 1")
	assert.Greater(t, byUID[1].CountPct, byUID[2].CountPct)
	// Equal counts break ties by uid, so the lower uid ranks first.
	assert.Less(t, byUID[2].CountPct, byUID[4].CountPct)
	assert.InDelta(t, 0.25, byUID[2].CountPct, 1e-9)
}

func TestApplyPercentiles_LuckExcludesUsersWithoutHits(t *testing.T) {
	records := []*StatRecord{
		record(1, 100, 50),
		record(2, 100, 0), // never hit a rarity-5
		record(3, 100, 90),
	}

	applyPercentiles(records)

	byUID := map[int32]*StatRecord{}
	for _, r := range records {
		byUID[r.UID] = r
	}

	assert.Zero(t, byUID[2].Luck5Pct, "users without a hit stay out of the luck population")
	assert.InDelta(t, 0.5, byUID[1].Luck5Pct, 1e-9, "population size is 2, not 3")
	assert.InDelta(t, 1.0, byUID[3].Luck5Pct, 1e-9)
}

func TestApplyPercentiles_SingleUser(t *testing.T) {
	records := []*StatRecord{record(1, 10, 40)}
	applyPercentiles(records)
	assert.InDelta(t, 1.0, records[0].CountPct, 1e-9)
	assert.InDelta(t, 1.0, records[0].Luck5Pct, 1e-9)
}

func TestApplyPercentiles_Empty(t *testing.T) {
	assert.NotPanics(t, func() { applyPercentiles(nil) })
}
