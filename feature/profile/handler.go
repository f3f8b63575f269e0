package profile

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gacha-tracker/core/apperr"
	"gacha-tracker/core/logger"
)

// Handler handles HTTP requests for provider profiles.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the profile routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/profile/:uid")
	group.Get("/", h.HandleGet)
	group.Post("/refresh", h.HandleRefresh)
	group.Delete("/", h.HandleEvict)
}

func parseUID(c *fiber.Ctx) (int32, error) {
	uid64, err := strconv.ParseInt(c.Params("uid"), 10, 32)
	if err != nil || uid64 <= 0 {
		return 0, errors.New("invalid uid")
	}
	return int32(uid64), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, apperr.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleGet returns the cached profile envelope, fetching it on a miss.
// @Summary Get Profile
// @Description Cached provider document. Served regardless of age; POST refresh to force a refetch.
// @Tags profile
// @Produce json
// @Param uid path int true "Player UID"
// @Success 200 {object} Envelope
// @Failure 404 {object} map[string]string "Provider knows no such uid"
// @Failure 502 {object} map[string]string "Provider unreachable"
// @Router /profile/{uid} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	uid, err := parseUID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	env, err := h.service.Get(c.Context(), uid)
	if err != nil {
		if !apperr.IsNotFound(err) {
			l.Error("Profile get failed", zap.Int32("uid", uid), zap.Error(err))
		}
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(env)
}

// HandleRefresh forces a provider refetch and overwrites the cache.
// @Summary Refresh Profile
// @Tags profile
// @Produce json
// @Param uid path int true "Player UID"
// @Success 200 {object} Envelope
// @Failure 502 {object} map[string]string "Provider unreachable"
// @Router /profile/{uid}/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	uid, err := parseUID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	env, err := h.service.Refresh(c.Context(), uid)
	if err != nil {
		if !apperr.IsNotFound(err) {
			l.Error("Profile refresh failed", zap.Int32("uid", uid), zap.Error(err))
		}
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(env)
}

// HandleEvict drops the cached envelope.
// @Summary Evict Profile
// @Tags profile
// @Produce json
// @Param uid path int true "Player UID"
// @Success 200 {object} map[string]string
// @Router /profile/{uid} [delete]
func (h *Handler) HandleEvict(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	uid, err := parseUID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.Evict(c.Context(), uid); err != nil {
		l.Error("Profile evict failed", zap.Int32("uid", uid), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
