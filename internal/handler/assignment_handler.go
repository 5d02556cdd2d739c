package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/service"
	"github.com/HimanshuSagar02/RajChemReacor/internal/utils"
)

// AssignmentHandler wires assignment authoring, submission and grading routes.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the routes available to any signed-in user.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("/course/:courseId", h.listByCourse)
}

// RegisterEducator attaches the authoring and grading routes. The grade
// route takes a submission id.
func (h *AssignmentHandler) RegisterEducator(router fiber.Router) {
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
	router.Get("/:id/submissions", h.listSubmissions)
	router.Patch("/:id/grade", h.grade)
}

// RegisterStudent attaches the submission routes.
func (h *AssignmentHandler) RegisterStudent(router fiber.Router) {
	router.Get("/:id/my", h.mySubmission)
	router.Post("/:id/submit", h.submit)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	var req dto.AssignmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	var upload *service.SubmissionUpload
	if header, err := c.FormFile("file"); err == nil && header != nil {
		file, upload2, err := openUpload(header)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "could not read uploaded file", nil)
		}
		defer file.Close()
		upload = upload2
	}

	assignment, err := h.service.Create(c.Context(), activityActorFromContext(c), req, upload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) listByCourse(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	assignments, err := h.service.ListByCourse(c.Context(), courseID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if err := h.service.Delete(c.Context(), activityActorFromContext(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "assignment deleted", nil)
}

func (h *AssignmentHandler) submit(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	header, err := c.FormFile("file")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "submission file is required", nil)
	}
	file, upload, err := openUpload(header)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "could not read uploaded file", nil)
	}
	defer file.Close()
	upload.Remarks = c.FormValue("remarks")

	submission, err := h.service.Submit(c.Context(), userIDFromContext(c), id, *upload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	message := "submission received"
	if submission.AlreadySubmitted {
		message = "assignment already submitted"
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, message, submission)
}

func (h *AssignmentHandler) mySubmission(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	submission, err := h.service.MySubmission(c.Context(), userIDFromContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *AssignmentHandler) listSubmissions(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	submissions, err := h.service.ListSubmissions(c.Context(), activityActorFromContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *AssignmentHandler) grade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	var req dto.GradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	submission, err := h.service.Grade(c.Context(), activityActorFromContext(c), id, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "submission graded", submission)
}

func openUpload(header *multipart.FileHeader) (multipart.File, *service.SubmissionUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return file, &service.SubmissionUpload{Filename: header.Filename, Reader: file}, nil
}
