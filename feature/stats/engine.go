package stats

import (
	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger/models"
)

// Metrics is the per-user computation result before the percentile pass.
type Metrics struct {
	Count      int64
	Luck4      float64
	Luck5      float64
	WinRate    float64
	WinStreak  int32
	LossStreak int32
}

// ComputeMetrics derives luck and streak metrics from one user's ordered
// ledger snapshot. isStandard classifies a top-rarity item as standard-pool
// (loss) for featured-guarantee categories; it is ignored elsewhere.
func ComputeMetrics(game catalog.Game, category catalog.Category, events []models.PullEvent, isStandard func(itemID int32) bool) Metrics {
	m := Metrics{Count: int64(len(events))}
	if len(events) == 0 {
		return m
	}

	m.Luck4 = meanGap(events, 4)
	m.Luck5 = meanGap(events, 5)

	if catalog.HasFeaturedGuarantee(game, category) {
		outcomes := classify(events, catalog.TopRarity(game), isStandard)
		if len(outcomes) > 0 {
			wins := 0
			for _, win := range outcomes {
				if win {
					wins++
				}
			}
			m.WinRate = float64(wins) / float64(len(outcomes))
			m.WinStreak = recentRun(outcomes, true)
			m.LossStreak = recentRun(outcomes, false)
		}
	}

	return m
}

// meanGap computes the mean number of draws consumed per rarity-N hit: the
// gaps between successive hits, the first gap measured from the start of
// history. Draws after the last hit do not count. Returns 0 with no hits.
func meanGap(events []models.PullEvent, rarity int32) float64 {
	total, hits := 0, 0
	sinceLast := 0
	for _, e := range events {
		sinceLast++
		if e.Rarity == rarity {
			total += sinceLast
			hits++
			sinceLast = 0
		}
	}
	if hits == 0 {
		return 0
	}
	return float64(total) / float64(hits)
}

// classify maps the top-rarity draws of a featured banner to a win/loss
// sequence: standard-pool items are losses ("lost the 50/50"), everything
// else is a win.
func classify(events []models.PullEvent, topRarity int32, isStandard func(itemID int32) bool) []bool {
	var outcomes []bool
	for _, e := range events {
		if e.Rarity != topRarity {
			continue
		}
		outcomes = append(outcomes, !isStandard(e.ItemID))
	}
	return outcomes
}

// recentRun returns the length of the most recent maximal run of the target
// outcome: for [loss, win, win, loss, win] both the win run and the loss run
// have length 1.
func recentRun(outcomes []bool, target bool) int32 {
	i := len(outcomes) - 1
	for i >= 0 && outcomes[i] != target {
		i--
	}
	var n int32
	for i >= 0 && outcomes[i] == target {
		n++
		i--
	}
	return n
}
