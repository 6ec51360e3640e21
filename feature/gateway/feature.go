package gateway

import (
	"survey-gateway/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature bundles the storage gateway for the application loader.
type Feature struct {
	service *Service
}

// NewFeature creates the gateway feature.
func NewFeature(client storage.Client, cfg storage.Config, logger *zap.Logger) *Feature {
	return &Feature{service: NewService(client, cfg, logger)}
}

// Name identifies the feature.
func (f *Feature) Name() string {
	return "gateway"
}

// IsEnabled reports whether the feature should load. The gateway is the
// point of the service, so it is always on.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the gateway routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
