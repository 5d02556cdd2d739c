package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/pkg/ai"
)

type queryReaderStub struct {
	reading ai.QueryReading
	err     error
}

func (r *queryReaderStub) ReadQuery(context.Context, string) (ai.QueryReading, error) {
	return r.reading, r.err
}

func TestAISearchMatchesKeywordsAgainstCatalogue(t *testing.T) {
	courses := newCourseRepoStub()
	courses.courses[1] = models.Course{ID: 1, Title: "Organic Chemistry Basics", IsPublished: true}
	courses.courses[2] = models.Course{ID: 2, Title: "Thermodynamics Deep Dive", IsPublished: true}
	courses.courses[3] = models.Course{ID: 3, Title: "Organic Synthesis Lab", IsPublished: false}

	reader := &queryReaderStub{reading: ai.QueryReading{Keywords: []string{"organic"}}}
	svc := NewAISearchService(reader, courses, validator.New(), testLogger())

	resp, err := svc.Search(context.Background(), dto.AISearchRequest{Query: "teach me carbon chemistry"})
	require.NoError(t, err)
	require.Equal(t, []string{"organic"}, resp.Keywords)
	require.Len(t, resp.Courses, 1, "unpublished courses stay hidden")
	require.Equal(t, uint(1), resp.Courses[0].ID)
}

func TestAISearchFallsBackToRawQuery(t *testing.T) {
	courses := newCourseRepoStub()
	courses.courses[1] = models.Course{ID: 1, Title: "Thermodynamics Deep Dive", IsPublished: true}

	reader := &queryReaderStub{err: errors.New("model offline")}
	svc := NewAISearchService(reader, courses, validator.New(), testLogger())

	resp, err := svc.Search(context.Background(), dto.AISearchRequest{Query: "Thermodynamics"})
	require.NoError(t, err)
	require.Equal(t, []string{"thermodynamics"}, resp.Keywords)
	require.Len(t, resp.Courses, 1)
}
