package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/middleware"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// NotificationHandler wires the notification routes.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register attaches the notification routes. Publishing is gated to
// educators; admins pass the gate as with every educator route.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("/my", h.my)
	router.Patch("/:id/read", h.markRead)
	router.Post("", middleware.WithAuth(h.publish, middleware.AuthOptions{Role: middleware.AuthRoleEducator}))
}

func (h *NotificationHandler) publish(c *fiber.Ctx) error {
	var req dto.NotificationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	created, err := h.service.Publish(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.APIResponse{
		Success: true,
		Data:    created,
		Message: "notification published",
		Meta:    fiber.Map{"delivered": len(created)},
	})
}

func (h *NotificationHandler) my(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid limit", nil)
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid offset", nil)
	}
	notifications, err := h.service.ListForUser(c.Context(), userIDFromContext(c), limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "notifications retrieved", notifications)
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	notification, err := h.service.MarkRead(c.Context(), id, userIDFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "notification marked as read", notification)
}
