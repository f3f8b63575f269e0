package stats

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gacha-tracker/core/apperr"
	"gacha-tracker/core/logger"
	"gacha-tracker/feature/catalog"
)

// Handler handles HTTP requests for statistics.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the statistics routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stats/:game/:category")
	group.Get("/population", h.HandleGetPopulation)
	group.Get("/:uid", h.HandleGetStats)
}

func parseCategory(c *fiber.Ctx) (catalog.Game, catalog.Category, error) {
	game := catalog.Game(c.Params("game"))
	category := catalog.Category(c.Params("category"))
	if !catalog.ValidCategory(game, category) {
		return "", "", errors.New("unknown game/category")
	}
	return game, category, nil
}

// HandleGetStats returns the stat record for one user and category.
// @Summary Get User Stats
// @Description Luck, streak and percentile metrics. 404 means no draws, which is distinct from zero values.
// @Tags stats
// @Produce json
// @Param game path string true "Game key"
// @Param category path string true "Pull category"
// @Param uid path int true "Player UID"
// @Success 200 {object} StatRecord
// @Failure 404 {object} map[string]string "No stats for this user"
// @Router /stats/{game}/{category}/{uid} [get]
func (h *Handler) HandleGetStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	game, category, err := parseCategory(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	uid64, err := strconv.ParseInt(c.Params("uid"), 10, 32)
	if err != nil || uid64 <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid uid"})
	}

	record, err := h.service.Get(c.Context(), int32(uid64), game, category)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no stats for this user"})
		}
		l.Error("Stats read failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "store unavailable"})
	}
	return c.JSON(record)
}

// HandleGetPopulation returns the category's population size.
// @Summary Get Population Size
// @Tags stats
// @Produce json
// @Param game path string true "Game key"
// @Param category path string true "Pull category"
// @Success 200 {object} map[string]int64
// @Router /stats/{game}/{category}/population [get]
func (h *Handler) HandleGetPopulation(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	game, category, err := parseCategory(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	count, err := h.service.GlobalCount(c.Context(), game, category)
	if err != nil {
		l.Error("Population read failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "store unavailable"})
	}
	return c.JSON(fiber.Map{"population": count})
}
