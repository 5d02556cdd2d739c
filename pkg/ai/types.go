package ai

import "context"

// QueryReading is the model's structured interpretation of a free-text
// course search query.
type QueryReading struct {
	Keywords   []string               `json:"keywords"`
	Categories []string               `json:"categories"`
	Level      string                 `json:"level,omitempty"`
	Raw        map[string]interface{} `json:"raw,omitempty"`
}

// QueryReader describes an AI model capable of turning a natural-language
// search query into catalogue search terms.
type QueryReader interface {
	ReadQuery(ctx context.Context, query string) (QueryReading, error)
}
