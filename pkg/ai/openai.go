package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rcr",
		Subsystem: "ai",
		Name:      "query_duration_seconds",
		Help:      "Duration of AI search query interpretations",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rcr",
		Subsystem: "ai",
		Name:      "query_failures_total",
		Help:      "Number of AI search query failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI query reader.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIQueryReader implements QueryReader against the OpenAI chat
// completion API.
type OpenAIQueryReader struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIQueryReader builds a new reader using the provided configuration.
func NewOpenAIQueryReader(cfg OpenAIConfig) (*OpenAIQueryReader, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 256
	}

	tracer := otel.Tracer("github.com/HimanshuSagar02/RajChemReacor/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIQueryReader{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// ReadQuery sends the query to OpenAI and parses the structured reading.
func (r *OpenAIQueryReader) ReadQuery(parent context.Context, query string) (QueryReading, error) {
	ctx, span := r.tracer.Start(parent, "openai.read_query", trace.WithAttributes(
		attribute.String("model", r.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       r.cfg.Model,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: readerSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: query,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := r.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	aiDuration.WithLabelValues(r.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		aiFailures.WithLabelValues(r.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return QueryReading{}, fmt.Errorf("openai read query: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(r.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return QueryReading{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	reading, err := parseQueryResponse(content)
	if err != nil {
		aiFailures.WithLabelValues(r.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return QueryReading{}, err
	}

	reading.Raw = map[string]interface{}{
		"usage": resp.Usage,
	}

	return reading, nil
}

func readerSystemPrompt() string {
	return "You translate a student's natural-language question about chemistry courses into catalogue search terms. Respond" +
		" with a JSON object containing keywords (array of short search terms), categories (array), and an optional level" +
		" (beginner, intermediate or advanced). Keep keywords lowercase."
}

func parseQueryResponse(content string) (QueryReading, error) {
	type payload struct {
		Keywords   []string `json:"keywords"`
		Categories []string `json:"categories"`
		Level      string   `json:"level"`
	}

	var data payload
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return QueryReading{}, fmt.Errorf("parse query json: %w", err)
	}

	seen := map[string]struct{}{}
	keywords := make([]string, 0, len(data.Keywords))
	for _, keyword := range data.Keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if _, dup := seen[keyword]; dup {
			continue
		}
		seen[keyword] = struct{}{}
		keywords = append(keywords, keyword)
	}

	return QueryReading{
		Keywords:   keywords,
		Categories: data.Categories,
		Level:      data.Level,
	}, nil
}
