package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// CourseHandler wires the course catalogue and enrollment routes.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register attaches the routes available to any signed-in user.
func (h *CourseHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterEducator attaches the authoring routes.
func (h *CourseHandler) RegisterEducator(router fiber.Router) {
	router.Post("", h.create)
	router.Put("/:id", h.update)
}

// RegisterStudent attaches the enrollment routes.
func (h *CourseHandler) RegisterStudent(router fiber.Router) {
	router.Get("/my", h.myCourses)
	router.Post("/:courseId", h.enroll)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	filter := repository.CourseFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	courses, err := h.service.ListVisible(c.Context(), activityActorFromContext(c), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	course, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var req dto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	course, err := h.service.Create(c.Context(), activityActorFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	var req dto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	course, err := h.service.Update(c.Context(), activityActorFromContext(c), id, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "course updated", course)
}

func (h *CourseHandler) enroll(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if err := h.service.Enroll(c.Context(), userIDFromContext(c), courseID); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "enrolled", fiber.Map{"course_id": courseID})
}

func (h *CourseHandler) myCourses(c *fiber.Ctx) error {
	courses, err := h.service.MyCourses(c.Context(), userIDFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "enrolled courses retrieved", courses)
}
