package achievement

import (
	"fmt"
	"time"
)

// Kind selects which fact table an operation targets.
type Kind string

const (
	KindCompletion Kind = "completion"
	KindFavorite   Kind = "favorite"
)

// ParseKind validates a client-supplied kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCompletion, KindFavorite:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown achievement kind %q", s)
	}
}

// Completion is the fact "username has completed achievement id". The
// composite primary key makes the pair unique, which is what lets Mark use an
// idempotent insert.
type Completion struct {
	Username      string    `gorm:"primaryKey;size:64" json:"username"`
	AchievementID int32     `gorm:"primaryKey;autoIncrement:false" json:"achievement_id"`
	MarkedAt      time.Time `json:"marked_at"`
}

// TableName overrides the GORM table name.
func (Completion) TableName() string {
	return "achievement_completions"
}

// Favorite is the fact "username has favorited achievement id".
type Favorite struct {
	Username      string    `gorm:"primaryKey;size:64" json:"username"`
	AchievementID int32     `gorm:"primaryKey;autoIncrement:false" json:"achievement_id"`
	MarkedAt      time.Time `json:"marked_at"`
}

// TableName overrides the GORM table name.
func (Favorite) TableName() string {
	return "achievement_favorites"
}
