package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// GradeHandler wires the gradebook routes.
type GradeHandler struct {
	service service.GradeService
	logger  zerolog.Logger
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(service service.GradeService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// RegisterEducator attaches the publishing routes.
func (h *GradeHandler) RegisterEducator(router fiber.Router) {
	router.Post("", h.publish)
	router.Get("/course/:courseId", h.listByCourse)
}

// RegisterStudent attaches the self-service routes.
func (h *GradeHandler) RegisterStudent(router fiber.Router) {
	router.Get("/my", h.myGrades)
}

func (h *GradeHandler) publish(c *fiber.Ctx) error {
	var req dto.GradeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	grade, err := h.service.Publish(c.Context(), activityActorFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade published", grade)
}

func (h *GradeHandler) listByCourse(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	grades, err := h.service.ListByCourse(c.Context(), activityActorFromContext(c), courseID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "grades retrieved", grades)
}

func (h *GradeHandler) myGrades(c *fiber.Ctx) error {
	grades, err := h.service.MyGrades(c.Context(), userIDFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "grades retrieved", grades)
}
