package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/middleware"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
		if id, ok := v.(int); ok {
			if id < 0 {
				return 0
			}
			return uint(id)
		}
	}
	return 0
}

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func activityActorFromContext(c *fiber.Ctx) service.ActivityActor {
	return service.ActivityActor{
		ID:   userIDFromContext(c),
		Role: userRoleFromContext(c),
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// respondError maps service-layer failures onto the HTTP error taxonomy:
// validation problems carry per-field details, sentinel errors carry their
// canonical status, anything else is a logged 500.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", validationDetails(validationErrors))
	case errors.Is(err, service.ErrNotFound):
		return utils.Fail(c, fiber.StatusNotFound, "resource not found", nil)
	case errors.Is(err, service.ErrForbidden):
		return utils.Fail(c, fiber.StatusForbidden, "insufficient permissions", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.Fail(c, fiber.StatusUnauthorized, "invalid email or password", nil)
	case errors.Is(err, service.ErrEmailTaken):
		return utils.Fail(c, fiber.StatusConflict, "email already registered", nil)
	case errors.Is(err, service.ErrInvalidTransition):
		return utils.Fail(c, fiber.StatusConflict, "status transition not allowed", nil)
	case errors.Is(err, service.ErrNotJoinable):
		return utils.Fail(c, fiber.StatusConflict, "live class is no longer joinable", nil)
	case errors.Is(err, service.ErrClassFull):
		return utils.Fail(c, fiber.StatusConflict, "live class roster is full", nil)
	case errors.Is(err, service.ErrMeetingRequired),
		errors.Is(err, service.ErrScheduleRequired):
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrNotEnrolled):
		return utils.Fail(c, fiber.StatusForbidden, "not enrolled in this course", nil)
	default:
		requestLogger(logger, c).Error().Err(err).Msg("internal server error")
		return utils.Fail(c, fiber.StatusInternalServerError, "internal server error", nil)
	}
}

func validationDetails(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, field := range errs {
		details[field.Field()] = field.Tag()
	}
	return details
}
