package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"newsfeed/internal/domain/model"
	"newsfeed/internal/domain/ports"
)

// generator is the subset of *genai.Models the provider needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider asks Gemini, grounded with Google Search, for the latest news.
type Provider struct {
	models      generator
	model       string
	temperature float32
	logger      ports.Logger
}

var _ ports.NewsProvider = (*Provider)(nil)

// Options configures a Provider.
type Options struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// New builds a Gemini-backed news provider.
func New(ctx context.Context, opts Options, logger ports.Logger) (*Provider, error) {
	if opts.APIKey == "" || opts.Model == "" {
		return nil, fmt.Errorf("gemini configuration missing")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return newProvider(client.Models, opts.Model, opts.Temperature, logger), nil
}

func newProvider(models generator, model string, temperature float32, logger ports.Logger) *Provider {
	return &Provider{
		models:      models,
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

// FetchNews requests structured, grounded articles for req.
func (p *Provider) FetchNews(ctx context.Context, req model.FeedRequest) (*model.ProviderResponse, error) {
	prompt := buildPrompt(req)

	if p.logger != nil {
		p.logger.Info(ctx, "calling gemini API",
			"model", p.model,
			"locale", string(req.Locale),
			"category", string(req.Category),
			"promptSize", len(prompt))
	}

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), p.generateConfig())
	if err != nil {
		return nil, classifyError(err)
	}

	return p.toProviderResponse(ctx, resp)
}

func (p *Provider) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(p.temperature),
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   articlesSchema(),
	}
}

func articlesSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"articles": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":     str(),
						"summary":   str(),
						"source":    str(),
						"category":  str(),
						"timestamp": str(),
					},
					Required: []string{"title", "summary", "source", "category"},
				},
			},
		},
		Required: []string{"articles"},
	}
}

func (p *Provider) toProviderResponse(ctx context.Context, resp *genai.GenerateContentResponse) (*model.ProviderResponse, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", ports.ErrMalformedResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked: %s", ports.ErrProviderRejected, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ports.ErrMalformedResponse)
	}

	candidate := resp.Candidates[0]
	text := strings.TrimSpace(resp.Text())

	if p.logger != nil {
		p.logger.Info(ctx, "gemini response received",
			"candidates", len(resp.Candidates),
			"finishReason", string(candidate.FinishReason),
			"textSize", len(text))
	}

	if text == "" {
		if candidate.FinishReason == genai.FinishReasonMaxTokens {
			return nil, fmt.Errorf("%w: token limit reached before output", ports.ErrMalformedResponse)
		}
		return nil, fmt.Errorf("%w: empty text (finish reason %q)", ports.ErrMalformedResponse, candidate.FinishReason)
	}

	if p.logger != nil && candidate.FinishReason != "" && candidate.FinishReason != genai.FinishReasonStop {
		p.logger.Warn(ctx, "gemini response finished early",
			"finishReason", string(candidate.FinishReason),
			"textSize", len(text))
	}

	out := &model.ProviderResponse{Text: text}
	if meta := candidate.GroundingMetadata; meta != nil {
		out.Chunks = convertChunks(meta.GroundingChunks)
		out.Supports = convertSupports(meta.GroundingSupports)
	}
	return out, nil
}

func convertChunks(chunks []*genai.GroundingChunk) []model.GroundingChunk {
	out := make([]model.GroundingChunk, 0, len(chunks))
	for _, chunk := range chunks {
		var converted model.GroundingChunk
		if chunk != nil && chunk.Web != nil && strings.TrimSpace(chunk.Web.URI) != "" {
			converted.Web = &model.Citation{
				Title: strings.TrimSpace(chunk.Web.Title),
				URI:   strings.TrimSpace(chunk.Web.URI),
			}
		}
		// Keep position even for non-web chunks; indices refer to this slice.
		out = append(out, converted)
	}
	return out
}

func convertSupports(supports []*genai.GroundingSupport) []model.GroundingSupport {
	out := make([]model.GroundingSupport, 0, len(supports))
	for _, support := range supports {
		if support == nil || support.Segment == nil || len(support.GroundingChunkIndices) == 0 {
			continue
		}
		indices := make([]int, 0, len(support.GroundingChunkIndices))
		for _, idx := range support.GroundingChunkIndices {
			indices = append(indices, int(idx))
		}
		out = append(out, model.GroundingSupport{
			Text:         support.Segment.Text,
			ChunkIndices: indices,
		})
	}
	return out
}

func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ports.ErrTransport, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d %s: %s", ports.ErrProviderRejected, apiErr.Code, apiErr.Status, apiErr.Message)
	}

	return fmt.Errorf("%w: %w", ports.ErrTransport, err)
}
