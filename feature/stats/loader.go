package stats

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gacha-tracker/feature/ledger"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the statistics feature.
func NewFeature(db *gorm.DB, ledgerStore *ledger.Store, logger *zap.Logger) *Feature {
	svc := NewService(db, ledgerStore, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service returns the statistics service for wiring into the background tasks.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "stats"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load runs the migrations and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
