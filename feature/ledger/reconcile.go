package ledger

import (
	"fmt"
	"strconv"
	"time"

	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger/models"
)

// timeLayout is the timestamp format of official exports and community
// submissions alike.
const timeLayout = "2006-01-02 15:04:05"

// RawRecord is one row of an import payload before normalization. Official
// exports carry the global id as a decimal string.
type RawRecord struct {
	ID       string `json:"id"`
	ItemID   int32  `json:"item_id"`
	ItemKind string `json:"item_kind"`
	Rarity   int32  `json:"rarity"`
	Time     string `json:"time"`
}

// Import is a raw batch for one user and category: either a full authoritative
// export page or a partial community submission.
type Import struct {
	UID        int32
	Game       catalog.Game
	Category   catalog.Category
	Provenance models.Provenance
	Records    []RawRecord
}

// BuildBatch validates and normalizes an import into a PullEvent batch ready
// for the store. Duplicated global ids within the batch collapse to the last
// occurrence, so re-delivered export pages stay idempotent.
func BuildBatch(imp Import) ([]models.PullEvent, error) {
	if !catalog.ValidCategory(imp.Game, imp.Category) {
		return nil, fmt.Errorf("unknown category %s/%s", imp.Game, imp.Category)
	}
	if imp.UID <= 0 {
		return nil, fmt.Errorf("invalid uid %d", imp.UID)
	}

	topRarity := catalog.TopRarity(imp.Game)

	byID := make(map[int64]models.PullEvent, len(imp.Records))
	order := make([]int64, 0, len(imp.Records))

	for i, raw := range imp.Records {
		globalID, err := strconv.ParseInt(raw.ID, 10, 64)
		if err != nil || globalID <= 0 {
			return nil, fmt.Errorf("record %d: invalid global id %q", i, raw.ID)
		}
		if raw.ItemKind != models.ItemKindCharacter && raw.ItemKind != models.ItemKindWeapon {
			return nil, fmt.Errorf("record %d: invalid item kind %q", i, raw.ItemKind)
		}
		if raw.Rarity < 3 || raw.Rarity > topRarity {
			return nil, fmt.Errorf("record %d: rarity %d out of range for %s", i, raw.Rarity, imp.Game)
		}
		ts, err := time.Parse(timeLayout, raw.Time)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid time %q: %v", i, raw.Time, err)
		}

		if _, seen := byID[globalID]; !seen {
			order = append(order, globalID)
		}
		byID[globalID] = models.PullEvent{
			GlobalID:   globalID,
			UID:        imp.UID,
			Game:       string(imp.Game),
			Category:   string(imp.Category),
			ItemKind:   raw.ItemKind,
			ItemID:     raw.ItemID,
			Rarity:     raw.Rarity,
			Timestamp:  ts,
			Provenance: imp.Provenance,
		}
	}

	batch := make([]models.PullEvent, 0, len(order))
	for _, id := range order {
		batch = append(batch, byID[id])
	}
	return batch, nil
}
