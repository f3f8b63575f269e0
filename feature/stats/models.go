package stats

import "time"

// StatRecord holds the derived luck/pity metrics and global percentiles for
// one user and category. Records are recomputed wholesale per refresh pass; a
// user with zero draws in a category has no record at all.
type StatRecord struct {
	UID      int32  `gorm:"primaryKey;autoIncrement:false" json:"uid"`
	Game     string `gorm:"primaryKey;size:16" json:"game"`
	Category string `gorm:"primaryKey;size:32" json:"category"`

	Count int64 `json:"count"`

	// Luck4/Luck5: mean draws consumed per rarity-4/5 hit. Lower is luckier.
	// Zero means no hit of that rarity yet.
	Luck4 float64 `json:"luck_4"`
	Luck5 float64 `json:"luck_5"`

	// Win/loss metrics are only meaningful for featured-guarantee categories.
	WinRate    float64 `json:"win_rate"`
	WinStreak  int32   `json:"win_streak"`
	LossStreak int32   `json:"loss_streak"`

	// Percentiles are a point-in-time global rank (0-1], frozen at refresh.
	CountPct float64 `json:"count_percentile"`
	Luck4Pct float64 `json:"luck_4_percentile"`
	Luck5Pct float64 `json:"luck_5_percentile"`

	ComputedAt time.Time `json:"computed_at"`
}

// TableName overrides the GORM table name.
func (StatRecord) TableName() string {
	return "stat_records"
}

// ReferencePoolItem is one standard-pool item id from the upstream reference
// feed. When present, these rows override the catalog's built-in pools.
type ReferencePoolItem struct {
	Game   string `gorm:"primaryKey;size:16" json:"game"`
	ItemID int32  `gorm:"primaryKey;autoIncrement:false" json:"item_id"`
}

// TableName overrides the GORM table name.
func (ReferencePoolItem) TableName() string {
	return "reference_pool_items"
}
