package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// AuthHandler wires the authentication routes. Successful sign-in answers
// with the user payload and sets the HTTP-only session cookie.
type AuthHandler struct {
	service    service.AuthService
	cookieName string
	cookieTTL  time.Duration
	secure     bool
	logger     zerolog.Logger
}

// NewAuthHandler constructs the handler. secure controls the cookie's Secure
// flag and should be on outside local development.
func NewAuthHandler(service service.AuthService, cookieName string, cookieTTL time.Duration, secure bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:    service,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		secure:     secure,
		logger:     logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth endpoints to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/signup", h.signup)
	router.Post("/login", h.login)
	router.Post("/googlesignup", h.googleSignup)
	router.Post("/logout", h.logout)
}

// RegisterProtected attaches the endpoints that need an authenticated user.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/currentuser", h.currentUser)
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	resp, err := h.service.Signup(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.setSessionCookie(c, resp.Token)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", resp)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.setSessionCookie(c, resp.Token)
	return utils.SendSuccess(c, "signed in", resp)
}

func (h *AuthHandler) googleSignup(c *fiber.Ctx) error {
	var req dto.GoogleSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	resp, err := h.service.GoogleSignup(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.setSessionCookie(c, resp.Token)
	return utils.SendSuccess(c, "signed in with google", resp)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return utils.SendSuccess(c, "signed out", nil)
}

func (h *AuthHandler) currentUser(c *fiber.Ctx) error {
	user, err := h.service.CurrentUser(c.Context(), userIDFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "current user", user)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
