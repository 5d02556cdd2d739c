package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// SharedNoteHandler wires the shared study material routes.
type SharedNoteHandler struct {
	service service.SharedNoteService
	logger  zerolog.Logger
}

// NewSharedNoteHandler constructs the handler.
func NewSharedNoteHandler(service service.SharedNoteService, logger zerolog.Logger) *SharedNoteHandler {
	return &SharedNoteHandler{
		service: service,
		logger:  logger.With().Str("component", "shared_note_handler").Logger(),
	}
}

// Register attaches the routes available to any signed-in user.
func (h *SharedNoteHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.upload)
	router.Delete("/:id", h.delete)
}

func (h *SharedNoteHandler) list(c *fiber.Ctx) error {
	var courseID *uint
	if c.Query("course_id") != "" {
		parsed, err := parseQueryInt(c, "course_id")
		if err != nil || parsed <= 0 {
			return utils.Fail(c, fiber.StatusBadRequest, "invalid course_id", nil)
		}
		id := uint(parsed)
		courseID = &id
	}
	notes, err := h.service.List(c.Context(), courseID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "notes retrieved", notes)
}

func (h *SharedNoteHandler) upload(c *fiber.Ctx) error {
	var req dto.SharedNoteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	header, err := c.FormFile("file")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "file is required", nil)
	}
	file, err := header.Open()
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "could not read uploaded file", nil)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "could not read uploaded file", nil)
	}

	note, err := h.service.Upload(c.Context(), userIDFromContext(c), req, header.Filename, content)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note uploaded", note)
}

func (h *SharedNoteHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if err := h.service.Delete(c.Context(), activityActorFromContext(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "note deleted", nil)
}
