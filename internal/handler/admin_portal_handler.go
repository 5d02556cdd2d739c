package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/observability"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// AdminPortalHandler wires the admin dashboard polling routes.
type AdminPortalHandler struct {
	service service.AdminPortalService
	logger  zerolog.Logger
}

// NewAdminPortalHandler constructs the handler.
func NewAdminPortalHandler(service service.AdminPortalService, logger zerolog.Logger) *AdminPortalHandler {
	return &AdminPortalHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_portal_handler").Logger(),
	}
}

// Register attaches the admin-only routes.
func (h *AdminPortalHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
	router.Get("/activities", h.activities)
	router.Get("/problems", h.problems)
}

func (h *AdminPortalHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	observability.PollRequests().WithLabelValues("admin_stats", strconv.FormatBool(stats.CacheHit)).Inc()
	return utils.SendSuccess(c, "portal stats retrieved", stats)
}

func (h *AdminPortalHandler) activities(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid limit", nil)
	}
	activities, err := h.service.GetActivities(c.Context(), limit)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	observability.PollRequests().WithLabelValues("admin_activities", "false").Inc()
	return utils.SendSuccess(c, "activities retrieved", activities)
}

func (h *AdminPortalHandler) problems(c *fiber.Ctx) error {
	problems, err := h.service.GetProblems(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	observability.PollRequests().WithLabelValues("admin_problems", "false").Inc()
	return utils.SendSuccess(c, "problems retrieved", problems)
}
