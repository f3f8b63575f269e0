package ledger

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gacha-tracker/core/apperr"
	"gacha-tracker/core/logger"
	"gacha-tracker/feature/catalog"
	"gacha-tracker/feature/ledger/models"
)

// Handler handles HTTP requests for the pull ledger.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ledger routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ledger/:game/:category/:uid")
	group.Post("/import", h.HandleImport)
	group.Get("/", h.HandleGetLedger)
	group.Get("/summary", h.HandleGetSummary)
	group.Delete("/", h.HandlePurge)
}

type importRequest struct {
	Provenance string      `json:"provenance"`
	Records    []RawRecord `json:"records"`
}

func parseTarget(c *fiber.Ctx) (int32, catalog.Game, catalog.Category, error) {
	uid64, err := strconv.ParseInt(c.Params("uid"), 10, 32)
	if err != nil || uid64 <= 0 {
		return 0, "", "", errors.New("invalid uid")
	}
	game := catalog.Game(c.Params("game"))
	category := catalog.Category(c.Params("category"))
	if !catalog.ValidCategory(game, category) {
		return 0, "", "", errors.New("unknown game/category")
	}
	return int32(uid64), game, category, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperr.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, apperr.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleImport ingests a pull batch for one user and category.
// @Summary Import Pulls
// @Description Bulk import of pull records, official or community provenance.
// @Tags ledger
// @Accept json
// @Produce json
// @Param game path string true "Game key (genshin, starrail, zenless)"
// @Param category path string true "Pull category"
// @Param uid path int true "Player UID"
// @Success 200 {object} map[string]int "Ingested record count"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Router /ledger/{game}/{category}/{uid}/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	uid, game, category, err := parseTarget(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	provenance, ok := models.ParseProvenance(req.Provenance)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid provenance"})
	}

	count, err := h.service.Ingest(c.Context(), Import{
		UID:        uid,
		Game:       game,
		Category:   category,
		Provenance: provenance,
		Records:    req.Records,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrStoreUnavailable) {
			l.Error("Ledger import failed", zap.Error(err))
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": "store unavailable"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"ingested": count})
}

// HandleGetLedger returns the ordered pull events for one user and category.
// @Summary Get Ledger
// @Description Timestamp-ordered pull events. Item ids only; names belong to the i18n layer.
// @Tags ledger
// @Produce json
// @Param game path string true "Game key"
// @Param category path string true "Pull category"
// @Param uid path int true "Player UID"
// @Success 200 {array} models.PullEvent "Ledger snapshot"
// @Router /ledger/{game}/{category}/{uid} [get]
func (h *Handler) HandleGetLedger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	uid, game, category, err := parseTarget(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	events, err := h.service.Ledger(c.Context(), uid, game, category)
	if err != nil {
		l.Error("Ledger read failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": "store unavailable"})
	}
	// An empty ledger is a normal outcome, not an error.
	return c.JSON(events)
}

// HandleGetSummary returns count and time boundaries for one user and category.
// @Summary Get Ledger Summary
// @Tags ledger
// @Produce json
// @Param game path string true "Game key"
// @Param category path string true "Pull category"
// @Param uid path int true "Player UID"
// @Success 200 {object} Summary
// @Router /ledger/{game}/{category}/{uid}/summary [get]
func (h *Handler) HandleGetSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	uid, game, category, err := parseTarget(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.service.Summarize(c.Context(), uid, game, category)
	if err != nil {
		l.Error("Ledger summary failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": "store unavailable"})
	}
	return c.JSON(summary)
}

// HandlePurge removes the user's records in a category.
// @Summary Purge Ledger
// @Description Administrative purge. With ?unofficial=true only community records are removed.
// @Tags ledger
// @Produce json
// @Param game path string true "Game key"
// @Param category path string true "Pull category"
// @Param uid path int true "Player UID"
// @Param unofficial query bool false "Remove only community-provenance records"
// @Success 200 {object} map[string]bool
// @Router /ledger/{game}/{category}/{uid} [delete]
func (h *Handler) HandlePurge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	uid, game, category, err := parseTarget(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	unofficialOnly := c.QueryBool("unofficial", false)
	if err := h.service.Purge(c.Context(), uid, game, category, unofficialOnly); err != nil {
		l.Error("Ledger purge failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": "store unavailable"})
	}
	return c.JSON(fiber.Map{"purged": true})
}
