package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/oppstream/oppstream-backend-go/internal/config"
	"github.com/oppstream/oppstream-backend-go/internal/domain/summary"
)

// systemPrompt scopes the model to IT-related content. Anything outside that
// scope must come back as the fixed "Not applicable" sentence.
const systemPrompt = `You are an enterprise CRM assistant.

TASK:
Summarize the content ONLY if it is related to:
- IT services
- Software products
- Cloud, web, mobile, or enterprise applications
- Digital transformation, migration, modernization, or system integration

RULES:
- If the content is NOT related to IT services or software products, respond exactly with:
  "Not applicable – content is not related to IT services or products."
- If applicable, generate ONE short professional summary.
- Maximum 25 words.
- No bullet points.
- No extra explanation.`

type SummaryServiceImpl struct {
	client     openai.Client
	model      string
	configured bool
}

// NewSummaryService builds the summary generator. An empty API key leaves the
// service unconfigured and Generate fails fast.
func NewSummaryService(cfg config.SummaryConfig) summary.SummaryService {
	svc := &SummaryServiceImpl{
		model:      cfg.Model,
		configured: cfg.APIKey != "",
	}
	if !svc.configured {
		return svc
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	svc.client = openai.NewClient(opts...)
	return svc
}

// Generate implements summary.SummaryService.
func (s *SummaryServiceImpl) Generate(ctx context.Context, req summary.GenerateSummaryRequest) (summary.SummaryResponse, error) {
	if !s.configured {
		return summary.SummaryResponse{}, summary.ErrNotConfigured
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage("CONTENT:\n" + req.DetailedNotes),
		},
	})
	if err != nil {
		return summary.SummaryResponse{}, fmt.Errorf("%w: %v", summary.ErrSummaryFailed, err)
	}

	if len(resp.Choices) == 0 {
		return summary.SummaryResponse{}, summary.ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return summary.SummaryResponse{}, summary.ErrEmptyResponse
	}

	return summary.SummaryResponse{Summary: text}, nil
}
