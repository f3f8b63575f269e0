package profile

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gacha-tracker/core/storage"
	"gacha-tracker/core/upstream"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the profile feature.
func NewFeature(storageClient storage.Client, bucket string, upstreamClient upstream.Client, logger *zap.Logger) *Feature {
	svc := NewService(storageClient, bucket, upstreamClient, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "profile"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load prepares the bucket and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.EnsureBucket(context.Background()); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
