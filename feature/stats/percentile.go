package stats

import "sort"

// applyPercentiles fills the percentile fields of every record in place.
// Per metric, users are sorted ascending by value with uid as the stable
// tiebreak; the percentile is 1-based rank over population size, so a higher
// count always maps to an equal-or-higher count percentile.
//
// Luck percentiles only rank users who have at least one hit of that rarity
// (value > 0); users without a hit keep percentile 0 rather than ranking as
// impossibly lucky.
func applyPercentiles(records []*StatRecord) {
	rank(records,
		func(r *StatRecord) float64 { return float64(r.Count) },
		func(r *StatRecord) bool { return true },
		func(r *StatRecord, pct float64) { r.CountPct = pct },
	)
	rank(records,
		func(r *StatRecord) float64 { return r.Luck4 },
		func(r *StatRecord) bool { return r.Luck4 > 0 },
		func(r *StatRecord, pct float64) { r.Luck4Pct = pct },
	)
	rank(records,
		func(r *StatRecord) float64 { return r.Luck5 },
		func(r *StatRecord) bool { return r.Luck5 > 0 },
		func(r *StatRecord, pct float64) { r.Luck5Pct = pct },
	)
}

func rank(records []*StatRecord, value func(*StatRecord) float64, eligible func(*StatRecord) bool, assign func(*StatRecord, float64)) {
	population := make([]*StatRecord, 0, len(records))
	for _, r := range records {
		if eligible(r) {
			population = append(population, r)
		}
	}
	if len(population) == 0 {
		return
	}

	sort.SliceStable(population, func(i, j int) bool {
		vi, vj := value(population[i]), value(population[j])
		if vi != vj {
			return vi < vj
		}
		return population[i].UID < population[j].UID
	})

	total := float64(len(population))
	for i, r := range population {
		assign(r, float64(i+1)/total)
	}
}
