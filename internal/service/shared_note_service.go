package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

var allowedNoteTypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
	"text/plain":      {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// SharedNoteService stores study files uploaded for a course. Uploads are
// type-sniffed before they reach storage.
type SharedNoteService interface {
	Upload(ctx context.Context, uploaderID uint, req dto.SharedNoteCreateRequest, filename string, content []byte) (dto.SharedNoteResponse, error)
	List(ctx context.Context, courseID *uint) ([]dto.SharedNoteResponse, error)
	Delete(ctx context.Context, actor ActivityActor, id uint) error
}

type sharedNoteService struct {
	notes    repository.SharedNoteRepository
	uploader FileUploader
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewSharedNoteService builds the shared-note service.
func NewSharedNoteService(
	notes repository.SharedNoteRepository,
	uploader FileUploader,
	validate *validator.Validate,
	logger zerolog.Logger,
) SharedNoteService {
	return &sharedNoteService{
		notes:    notes,
		uploader: uploader,
		validate: validate,
		logger:   logger.With().Str("component", "shared_note_service").Logger(),
	}
}

func (s *sharedNoteService) Upload(ctx context.Context, uploaderID uint, req dto.SharedNoteCreateRequest, filename string, content []byte) (dto.SharedNoteResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.SharedNoteResponse{}, err
	}
	if len(content) == 0 {
		return dto.SharedNoteResponse{}, errors.New("empty file")
	}

	detected := mimetype.Detect(content)
	if _, ok := allowedNoteTypes[detected.String()]; !ok {
		return dto.SharedNoteResponse{}, fmt.Errorf("file type %s is not allowed", detected.String())
	}

	url, err := s.uploader.Upload(ctx, filename, bytes.NewReader(content))
	if err != nil {
		return dto.SharedNoteResponse{}, fmt.Errorf("failed to upload note: %w", err)
	}

	note := models.SharedNote{
		UploaderID: uploaderID,
		CourseID:   req.CourseID,
		Title:      req.Title,
		FileURL:    url,
	}
	if err := s.notes.Create(ctx, &note); err != nil {
		return dto.SharedNoteResponse{}, err
	}

	s.logger.Info().Uint("note_id", note.ID).Str("mime", detected.String()).Msg("shared note uploaded")
	return dto.NewSharedNoteResponse(note), nil
}

func (s *sharedNoteService) List(ctx context.Context, courseID *uint) ([]dto.SharedNoteResponse, error) {
	notes, err := s.notes.List(ctx, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SharedNoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, dto.NewSharedNoteResponse(note))
	}
	return out, nil
}

func (s *sharedNoteService) Delete(ctx context.Context, actor ActivityActor, id uint) error {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if actor.Role != models.RoleAdmin && note.UploaderID != actor.ID {
		return ErrForbidden
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
