package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/handler"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
)

type mockLiveClassService struct {
	created    dto.LiveClassCreateRequest
	createResp dto.LiveClassResponse
	createErr  error
	statusErr  error
	joinResp   dto.LiveClassJoinResponse
	joinErr    error
	joinedBy   uint
}

func (m *mockLiveClassService) Create(_ context.Context, _ service.ActivityActor, req dto.LiveClassCreateRequest) (dto.LiveClassResponse, error) {
	m.created = req
	return m.createResp, m.createErr
}

func (m *mockLiveClassService) Update(_ context.Context, _ service.ActivityActor, _ uint, _ dto.LiveClassUpdateRequest) (dto.LiveClassResponse, error) {
	return dto.LiveClassResponse{}, nil
}

func (m *mockLiveClassService) ChangeStatus(_ context.Context, _ service.ActivityActor, _ uint, status string) (dto.LiveClassResponse, error) {
	if m.statusErr != nil {
		return dto.LiveClassResponse{}, m.statusErr
	}
	return dto.LiveClassResponse{Status: status}, nil
}

func (m *mockLiveClassService) Delete(context.Context, service.ActivityActor, uint) error {
	return nil
}

func (m *mockLiveClassService) Join(_ context.Context, studentID uint, _ uint) (dto.LiveClassJoinResponse, error) {
	m.joinedBy = studentID
	return m.joinResp, m.joinErr
}

func (m *mockLiveClassService) ListForEducator(context.Context, service.ActivityActor, string) ([]dto.LiveClassResponse, error) {
	return nil, nil
}

func (m *mockLiveClassService) ListForStudent(context.Context, uint) ([]dto.LiveClassResponse, error) {
	return nil, nil
}

func liveClassApp(svc *mockLiveClassService, userID uint, role string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/liveclass", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		return c.Next()
	})
	h := handler.NewLiveClassHandler(svc, zerolog.New(io.Discard))
	h.RegisterEducator(group)
	h.RegisterStudent(group)
	return app
}

func TestLiveClassHandler_CreatePassesPayload(t *testing.T) {
	svc := &mockLiveClassService{createResp: dto.LiveClassResponse{ID: 1, Status: "scheduled"}}
	app := liveClassApp(svc, 7, "educator")

	payload := dto.LiveClassCreateRequest{
		CourseID:     3,
		Title:        "Acids and Bases",
		Platform:     "portal",
		ScheduleType: dto.ScheduleTypeStartNow,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/liveclass", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, dto.ScheduleTypeStartNow, svc.created.ScheduleType)
}

func TestLiveClassHandler_InvalidTransitionIsConflict(t *testing.T) {
	svc := &mockLiveClassService{statusErr: service.ErrInvalidTransition}
	app := liveClassApp(svc, 7, "educator")

	body, err := json.Marshal(dto.LiveClassStatusRequest{Status: "live"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/liveclass/5/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLiveClassHandler_JoinReportsAlreadyJoined(t *testing.T) {
	svc := &mockLiveClassService{joinResp: dto.LiveClassJoinResponse{AlreadyJoined: true}}
	app := liveClassApp(svc, 42, "student")

	req := httptest.NewRequest(http.MethodPost, "/api/liveclass/5/join", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(42), svc.joinedBy)

	var response struct {
		Success bool                      `json:"success"`
		Message string                    `json:"message"`
		Data    dto.LiveClassJoinResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, "already joined live class", response.Message)
	require.True(t, response.Data.AlreadyJoined)
}

func TestLiveClassHandler_JoinFullRosterIsConflict(t *testing.T) {
	svc := &mockLiveClassService{joinErr: service.ErrClassFull}
	app := liveClassApp(svc, 42, "student")

	req := httptest.NewRequest(http.MethodPost, "/api/liveclass/5/join", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
