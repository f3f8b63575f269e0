package achievement

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gacha-tracker/core/apperr"
	"gacha-tracker/core/logger"
	"gacha-tracker/core/middleware/auth"
)

// Handler handles HTTP requests for achievements.
type Handler struct {
	service  *Service
	adminKey string
}

// NewHandler creates a new HTTP handler. adminKey gates the unfiltered
// listing.
func NewHandler(service *Service, adminKey string) *Handler {
	return &Handler{service: service, adminKey: adminKey}
}

// RegisterRoutes registers the achievement routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/achievements/:username")
	group.Post("/:id", h.HandleMark)
	group.Get("/", h.HandleList)
}

type markRequest struct {
	Kind string `json:"kind"`
	Op   string `json:"op"`
}

func parseMark(c *fiber.Ctx) (string, int32, error) {
	username := c.Params("username")
	id64, err := strconv.ParseInt(c.Params("id"), 10, 32)
	if err != nil {
		return "", 0, errors.New("invalid achievement id")
	}
	return username, int32(id64), nil
}

// HandleMark marks or unmarks one achievement for a user.
// @Summary Mark Achievement
// @Description Marking evicts any mutual-exclusion siblings of the same kind; unmarking removes only the named fact.
// @Tags achievements
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param id path int true "Achievement id"
// @Param request body markRequest true "kind: completion|favorite, op: add|remove (add by default)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid payload"
// @Router /achievements/{username}/{id} [post]
func (h *Handler) HandleMark(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	username, id, err := parseMark(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	kind, err := ParseKind(req.Kind)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	switch req.Op {
	case "", "add":
		err = h.service.Mark(c.Context(), username, id, kind)
	case "remove":
		err = h.service.Unmark(c.Context(), username, id, kind)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "op must be add or remove"})
	}
	if err != nil {
		if errors.Is(err, apperr.ErrStoreUnavailable) {
			l.Error("Achievement mark failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "store unavailable"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleList returns the user's achievement listing.
// @Summary List Achievements
// @Description Completions and favorites. Achievements flagged impossible and hidden only appear with a valid admin key.
// @Tags achievements
// @Produce json
// @Param username path string true "Username"
// @Param X-Admin-Key header string false "Admin key for unfiltered listings"
// @Success 200 {object} Profile
// @Router /achievements/{username} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	username := c.Params("username")
	admin := auth.IsAdmin(c, h.adminKey)

	profile, err := h.service.ListProfile(c.Context(), username, admin)
	if err != nil {
		l.Error("Achievement listing failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "store unavailable"})
	}
	return c.JSON(profile)
}
