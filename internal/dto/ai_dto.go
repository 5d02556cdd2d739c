package dto

// AISearchRequest is a natural-language course search query.
type AISearchRequest struct {
	Query string `json:"query" validate:"required,min=2,max=500"`
}

// AISearchResponse pairs the ranked courses with the model's reading of the
// query.
type AISearchResponse struct {
	Keywords []string         `json:"keywords"`
	Courses  []CourseResponse `json:"courses"`
}
