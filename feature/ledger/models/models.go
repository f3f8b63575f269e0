package models

import "time"

// Provenance is the origin of a pull record. Ordering matters: official data
// always takes precedence over community submissions.
type Provenance int32

const (
	// ProvenanceCommunity marks user-submitted, provisional records.
	ProvenanceCommunity Provenance = 0
	// ProvenanceOfficial marks records from an authoritative game-server export.
	ProvenanceOfficial Provenance = 1
)

// String returns the wire name of the provenance.
func (p Provenance) String() string {
	if p == ProvenanceOfficial {
		return "official"
	}
	return "community"
}

// ParseProvenance maps a wire name to a Provenance.
func ParseProvenance(s string) (Provenance, bool) {
	switch s {
	case "official":
		return ProvenanceOfficial, true
	case "community":
		return ProvenanceCommunity, true
	default:
		return 0, false
	}
}

// Item kinds. Weapon covers light cones and w-engines; the distinction the
// statistics engine cares about is character-like vs weapon-like.
const (
	ItemKindCharacter = "character"
	ItemKindWeapon    = "weapon"
)

// PullEvent is one immutable pull fact. The upstream-assigned global id is
// globally unique within a game/category, so (global_id, uid, game, category)
// is the idempotency key.
type PullEvent struct {
	GlobalID   int64      `gorm:"primaryKey;autoIncrement:false" json:"global_id"`
	UID        int32      `gorm:"primaryKey;autoIncrement:false;index:idx_pull_uid,priority:1" json:"uid"`
	Game       string     `gorm:"primaryKey;size:16;index:idx_pull_uid,priority:2" json:"game"`
	Category   string     `gorm:"primaryKey;size:32;index:idx_pull_uid,priority:3" json:"category"`
	ItemKind   string     `gorm:"size:16" json:"item_kind"`
	ItemID     int32      `json:"item_id"`
	Rarity     int32      `json:"rarity"`
	Timestamp  time.Time  `gorm:"index:idx_pull_uid,priority:4" json:"timestamp"`
	Provenance Provenance `json:"provenance"`

	// UpdatedAt is write bookkeeping, not pull data. GORM bumps it whenever an
	// official upsert overwrites a row, which is what lets the statistics
	// watermark see content corrections that change neither ids nor counts.
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the GORM table name.
func (PullEvent) TableName() string {
	return "pull_events"
}
