package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// LiveClassHandler wires the live-class lifecycle routes.
type LiveClassHandler struct {
	service service.LiveClassService
	logger  zerolog.Logger
}

// NewLiveClassHandler constructs the handler.
func NewLiveClassHandler(service service.LiveClassService, logger zerolog.Logger) *LiveClassHandler {
	return &LiveClassHandler{
		service: service,
		logger:  logger.With().Str("component", "liveclass_handler").Logger(),
	}
}

// RegisterEducator attaches the educator/admin routes.
func (h *LiveClassHandler) RegisterEducator(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/educator", h.listForEducator)
	router.Patch("/:id", h.update)
	router.Patch("/:id/status", h.changeStatus)
	router.Delete("/:id", h.delete)
}

// RegisterStudent attaches the student routes.
func (h *LiveClassHandler) RegisterStudent(router fiber.Router) {
	router.Get("/my", h.listForStudent)
	router.Post("/:id/join", h.join)
}

func (h *LiveClassHandler) create(c *fiber.Ctx) error {
	var req dto.LiveClassCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	class, err := h.service.Create(c.Context(), activityActorFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "live class created", class)
}

func (h *LiveClassHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var req dto.LiveClassUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	class, err := h.service.Update(c.Context(), activityActorFromContext(c), id, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "live class updated", class)
}

func (h *LiveClassHandler) changeStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var req dto.LiveClassStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	class, err := h.service.ChangeStatus(c.Context(), activityActorFromContext(c), id, req.Status)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "live class status updated", class)
}

func (h *LiveClassHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if err := h.service.Delete(c.Context(), activityActorFromContext(c), id); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "live class deleted", fiber.Map{"id": id})
}

func (h *LiveClassHandler) join(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result, err := h.service.Join(c.Context(), userIDFromContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	message := "joined live class"
	if result.AlreadyJoined {
		message = "already joined live class"
	}
	return utils.SendSuccess(c, message, result)
}

func (h *LiveClassHandler) listForEducator(c *fiber.Ctx) error {
	classes, err := h.service.ListForEducator(c.Context(), activityActorFromContext(c), c.Query("status"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "live classes retrieved", classes)
}

func (h *LiveClassHandler) listForStudent(c *fiber.Ctx) error {
	classes, err := h.service.ListForStudent(c.Context(), userIDFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "live classes retrieved", classes)
}
