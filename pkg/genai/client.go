package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/souqna/souqna/pkg/assistant"
	"github.com/souqna/souqna/pkg/logger"
)

const (
	// DefaultBaseURL is the default Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the generation model used for both chat and
	// grounded search.
	DefaultModel = "gemini-3-flash-preview"

	// personaInstruction is the fixed system-level persona supplied on
	// every chat call. It is never stored as a transcript turn.
	personaInstruction = "أنت مساعد تسوق ودود وخبير لمنصة 'سوقنا'. لغتك هي العربية بلهجة مهذبة وواضحة. هدفك هو مساعدة العملاء في اختيار المنتجات المناسبة، شرح المواصفات، وتقديم نصائح شرائية ذكية."

	// queryTemplate frames the user's final chat query.
	queryTemplate = `أنت مساعد تسوق ذكي لمتجر "سوقنا" (Souqna). ساعد المستخدم في العثور على أفضل العروض والمنتجات. الاستفسار: %s`

	// searchTemplate frames the one-shot grounded search query.
	searchTemplate = "ما هي أفضل %s المتوفرة في السوق حالياً وما هي مميزاتها؟ اعطني روابط للمراجعات إن أمكن."
)

// Client talks to the Gemini GenerateContent API. It implements
// assistant.Generator.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     logger.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithModel overrides the generation model.
func WithModel(m string) Option {
	return func(c *Client) { c.model = m }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger attaches a logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Gemini client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: &logger.NoOpLogger{},
		tracer: otel.Tracer("souqna/genai"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateReply replays the full transcript in original order, appends the
// framed query as the final user turn, and returns the reply text. A
// response without text yields an empty string, not an error; only
// transport, status, and decode failures are errors.
func (c *Client) GenerateReply(ctx context.Context, history []assistant.Turn, query string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "genai.generate_reply")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", c.model),
		attribute.Int("ai.history_turns", len(history)),
	)

	contents := make([]Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, Content{
			Role:  wireRole(turn.Role),
			Parts: []Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, Content{
		Role:  "user",
		Parts: []Part{{Text: fmt.Sprintf(queryTemplate, query)}},
	})

	reqBody := GenerateRequest{
		Contents: contents,
		SystemInstruction: &SystemInstruction{
			Parts: []Part{{Text: personaInstruction}},
		},
	}

	resp, err := c.generate(ctx, reqBody)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	text := candidateText(resp)
	span.SetAttributes(
		attribute.Int("ai.total_tokens", resp.UsageMetadata.TotalTokenCount),
		attribute.Int("ai.response_length", len(text)),
	)

	c.logger.Info("Gemini reply received", map[string]interface{}{
		"operation":     "genai_reply",
		"model":         c.model,
		"history_turns": len(history),
		"total_tokens":  resp.UsageMetadata.TotalTokenCount,
	})

	return text, nil
}

// SearchWithGrounding issues a one-shot query with the googleSearch tool
// and returns the text plus its grounding sources.
func (c *Client) SearchWithGrounding(ctx context.Context, query string) (string, []assistant.Source, error) {
	ctx, span := c.tracer.Start(ctx, "genai.search_grounding")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", c.model),
	)

	reqBody := GenerateRequest{
		Contents: []Content{{
			Role:  "user",
			Parts: []Part{{Text: fmt.Sprintf(searchTemplate, query)}},
		}},
		Tools: []Tool{{GoogleSearch: &GoogleSearch{}}},
	}

	resp, err := c.generate(ctx, reqBody)
	if err != nil {
		span.RecordError(err)
		return "", nil, err
	}

	text := candidateText(resp)

	var sources []assistant.Source
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			sources = append(sources, assistant.Source{
				Title: chunk.Web.Title,
				Link:  chunk.Web.URI,
			})
		}
	}
	span.SetAttributes(attribute.Int("ai.grounding_sources", len(sources)))

	return text, sources, nil
}

// generate performs one GenerateContent call. No retry: each send is a
// fresh, independent attempt.
func (c *Client) generate(ctx context.Context, reqBody GenerateRequest) (*GenerateResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Gemini request failed", map[string]interface{}{
			"operation":   "genai_error",
			"status_code": resp.StatusCode,
		})
		return nil, apiError(resp.StatusCode, body)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &genResp, nil
}

// candidateText concatenates the text parts of the first candidate.
// A response without candidates or text yields "".
func candidateText(resp *GenerateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text
}

// apiError maps Gemini API status codes to errors.
func apiError(statusCode int, body []byte) error {
	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("gemini API error (status %d): %s", statusCode, envelope.Error.Message)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("gemini API error: invalid or missing API key")
	case http.StatusTooManyRequests:
		return fmt.Errorf("gemini API error: rate limit exceeded")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("gemini API error: service temporarily unavailable (status %d)", statusCode)
	default:
		return fmt.Errorf("gemini API error (status %d): %s", statusCode, string(body))
	}
}

// wireRole maps transcript roles to the Gemini wire roles.
func wireRole(r assistant.Role) string {
	if r == assistant.RoleAssistant {
		return "model"
	}
	return "user"
}
