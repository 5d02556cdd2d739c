package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// AttendanceHandler wires the attendance routes.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// RegisterEducator attaches the marking routes.
func (h *AttendanceHandler) RegisterEducator(router fiber.Router) {
	router.Post("", h.markBulk)
	router.Get("/course/:courseId", h.listByCourse)
}

// RegisterStudent attaches the self-service routes.
func (h *AttendanceHandler) RegisterStudent(router fiber.Router) {
	router.Get("/my", h.myAttendance)
}

func (h *AttendanceHandler) markBulk(c *fiber.Ctx) error {
	var req dto.AttendanceBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	records, err := h.service.MarkBulk(c.Context(), activityActorFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attendance recorded", records)
}

func (h *AttendanceHandler) listByCourse(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	records, err := h.service.ListByCourseAndDate(c.Context(), activityActorFromContext(c), courseID, c.Query("date"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "attendance retrieved", records)
}

func (h *AttendanceHandler) myAttendance(c *fiber.Ctx) error {
	records, summary, err := h.service.MyAttendance(c.Context(), userIDFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.OK(c, fiber.Map{"records": records, "summary": summary}, "attendance retrieved", nil)
}
