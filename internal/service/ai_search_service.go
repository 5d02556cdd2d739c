package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
	"github.com/HimanshuSagar02/RajChemReacor/pkg/ai"
)

// AISearchService answers natural-language catalogue questions. The query is
// read by the AI into keywords, then matched against published courses. When
// the reader is unavailable the raw query is used as a single keyword so
// search still works.
type AISearchService interface {
	Search(ctx context.Context, req dto.AISearchRequest) (dto.AISearchResponse, error)
}

type aiSearchService struct {
	reader   ai.QueryReader
	courses  repository.CourseRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAISearchService builds the AI search service. reader may be nil.
func NewAISearchService(
	reader ai.QueryReader,
	courses repository.CourseRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) AISearchService {
	return &aiSearchService{
		reader:   reader,
		courses:  courses,
		validate: validate,
		logger:   logger.With().Str("component", "ai_search_service").Logger(),
	}
}

func (s *aiSearchService) Search(ctx context.Context, req dto.AISearchRequest) (dto.AISearchResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.AISearchResponse{}, err
	}

	keywords := s.readKeywords(ctx, req.Query)

	seen := map[uint]struct{}{}
	var matches []dto.CourseResponse
	for _, keyword := range keywords {
		courses, err := s.courses.List(ctx, repository.CourseFilter{Search: keyword, OnlyVisible: true})
		if err != nil {
			return dto.AISearchResponse{}, err
		}
		for _, course := range courses {
			if _, dup := seen[course.ID]; dup {
				continue
			}
			seen[course.ID] = struct{}{}
			matches = append(matches, dto.NewCourseResponse(course))
		}
	}

	return dto.AISearchResponse{Keywords: keywords, Courses: matches}, nil
}

func (s *aiSearchService) readKeywords(ctx context.Context, query string) []string {
	fallback := []string{strings.ToLower(strings.TrimSpace(query))}
	if s.reader == nil {
		return fallback
	}

	reading, err := s.reader.ReadQuery(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Msg("query reader unavailable, falling back to raw query")
		return fallback
	}
	if len(reading.Keywords) == 0 {
		return fallback
	}
	return reading.Keywords
}
