package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
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

type mockAssignmentService struct {
	submitResp    dto.SubmissionResponse
	submitErr     error
	submittedBy   uint
	submittedFile string
	remarks       string
	gradeReq      dto.GradeSubmissionRequest
}

func (m *mockAssignmentService) Create(context.Context, service.ActivityActor, dto.AssignmentCreateRequest, *service.SubmissionUpload) (dto.AssignmentResponse, error) {
	return dto.AssignmentResponse{}, nil
}

func (m *mockAssignmentService) ListByCourse(context.Context, uint) ([]dto.AssignmentResponse, error) {
	return nil, nil
}

func (m *mockAssignmentService) Delete(context.Context, service.ActivityActor, uint) error {
	return nil
}

func (m *mockAssignmentService) Submit(_ context.Context, studentID, _ uint, upload service.SubmissionUpload) (dto.SubmissionResponse, error) {
	m.submittedBy = studentID
	m.submittedFile = upload.Filename
	m.remarks = upload.Remarks
	return m.submitResp, m.submitErr
}

func (m *mockAssignmentService) MySubmission(context.Context, uint, uint) (dto.SubmissionResponse, error) {
	return m.submitResp, m.submitErr
}

func (m *mockAssignmentService) ListSubmissions(context.Context, service.ActivityActor, uint) ([]dto.SubmissionResponse, error) {
	return nil, nil
}

func (m *mockAssignmentService) Grade(_ context.Context, _ service.ActivityActor, _ uint, req dto.GradeSubmissionRequest) (dto.SubmissionResponse, error) {
	m.gradeReq = req
	return dto.SubmissionResponse{Status: "graded"}, nil
}

func assignmentApp(svc *mockAssignmentService, userID uint, role string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/assignments", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		return c.Next()
	})
	h := handler.NewAssignmentHandler(svc, zerolog.New(io.Discard))
	h.Register(group)
	h.RegisterEducator(group)
	h.RegisterStudent(group)
	return app
}

func multipartBody(t *testing.T, filename, remarks string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("answer sheet"))
	require.NoError(t, err)
	if remarks != "" {
		require.NoError(t, writer.WriteField("remarks", remarks))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestAssignmentHandler_SubmitPassesUpload(t *testing.T) {
	svc := &mockAssignmentService{submitResp: dto.SubmissionResponse{ID: 11}}
	app := assignmentApp(svc, 42, "student")

	body, contentType := multipartBody(t, "answers.pdf", "second attempt notes")
	req := httptest.NewRequest(http.MethodPost, "/api/assignments/9/submit", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(42), svc.submittedBy)
	require.Equal(t, "answers.pdf", svc.submittedFile)
	require.Equal(t, "second attempt notes", svc.remarks)
}

func TestAssignmentHandler_SubmitWithoutFileIsBadRequest(t *testing.T) {
	svc := &mockAssignmentService{}
	app := assignmentApp(svc, 42, "student")

	req := httptest.NewRequest(http.MethodPost, "/api/assignments/9/submit", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAssignmentHandler_ResubmissionReportsExisting(t *testing.T) {
	svc := &mockAssignmentService{submitResp: dto.SubmissionResponse{ID: 11, AlreadySubmitted: true}}
	app := assignmentApp(svc, 42, "student")

	body, contentType := multipartBody(t, "answers.pdf", "")
	req := httptest.NewRequest(http.MethodPost, "/api/assignments/9/submit", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var response struct {
		Message string                 `json:"message"`
		Data    dto.SubmissionResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "assignment already submitted", response.Message)
	require.True(t, response.Data.AlreadySubmitted)
}

func TestAssignmentHandler_NotEnrolledIsForbidden(t *testing.T) {
	svc := &mockAssignmentService{submitErr: service.ErrNotEnrolled}
	app := assignmentApp(svc, 42, "student")

	body, contentType := multipartBody(t, "answers.pdf", "")
	req := httptest.NewRequest(http.MethodPost, "/api/assignments/9/submit", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
