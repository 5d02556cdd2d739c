package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// UserHandler wires account listing routes for staff.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches user endpoints to the router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/allstudents", h.allStudents)
}

func (h *UserHandler) allStudents(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid page", nil)
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid page size", nil)
	}

	students, total, err := h.service.ListStudents(c.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.OK(c, students, "students retrieved", fiber.Map{"total": total})
}
