package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// AIHandler wires the natural-language course search route.
type AIHandler struct {
	service service.AISearchService
	logger  zerolog.Logger
}

// NewAIHandler constructs the handler.
func NewAIHandler(service service.AISearchService, logger zerolog.Logger) *AIHandler {
	return &AIHandler{
		service: service,
		logger:  logger.With().Str("component", "ai_handler").Logger(),
	}
}

// Register attaches the search route.
func (h *AIHandler) Register(router fiber.Router) {
	router.Post("/search", h.search)
}

func (h *AIHandler) search(c *fiber.Ctx) error {
	var req dto.AISearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	result, err := h.service.Search(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "search completed", result)
}
