package achievement

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gacha-tracker/feature/catalog"
)

// Profile is a user's achievement listing, one slice per kind.
type Profile struct {
	Completions []int32 `json:"completions"`
	Favorites   []int32 `json:"favorites"`
}

// Service orchestrates achievement marks and listings.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates an achievement service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{store: NewStore(db), logger: logger}
}

// Migrate runs the achievement migrations.
func (s *Service) Migrate() error {
	return s.store.Migrate()
}

func validateTarget(username string, id int32) error {
	if username == "" || len(username) > 64 {
		return fmt.Errorf("invalid username")
	}
	if id <= 0 {
		return fmt.Errorf("invalid achievement id %d", id)
	}
	return nil
}

// Mark records the achievement for the user, evicting mutual-exclusion
// siblings of the same kind.
func (s *Service) Mark(ctx context.Context, username string, id int32, kind Kind) error {
	if err := validateTarget(username, id); err != nil {
		return err
	}
	return s.store.Mark(ctx, username, id, kind)
}

// Unmark removes the single fact, leaving siblings untouched.
func (s *Service) Unmark(ctx context.Context, username string, id int32, kind Kind) error {
	if err := validateTarget(username, id); err != nil {
		return err
	}
	return s.store.Unmark(ctx, username, id, kind)
}

// ListProfile returns both kinds for the user. Non-admin listings drop
// achievements flagged impossible and hidden; the facts stay stored either
// way.
func (s *Service) ListProfile(ctx context.Context, username string, admin bool) (*Profile, error) {
	completions, err := s.store.List(ctx, username, KindCompletion)
	if err != nil {
		return nil, err
	}
	favorites, err := s.store.List(ctx, username, KindFavorite)
	if err != nil {
		return nil, err
	}
	if !admin {
		completions = filterVisible(completions)
		favorites = filterVisible(favorites)
	}
	return &Profile{Completions: completions, Favorites: favorites}, nil
}

func filterVisible(ids []int32) []int32 {
	visible := make([]int32, 0, len(ids))
	for _, id := range ids {
		if catalog.VisibleToPublic(id) {
			visible = append(visible, id)
		}
	}
	return visible
}
