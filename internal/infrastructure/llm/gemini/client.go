package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
	"github.com/kirillkom/email-triage-assistant/internal/infrastructure/resilience"
)

const defaultTimeout = 60 * time.Second

type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string

	// Timeout bounds every outbound call.
	Timeout time.Duration
}

// CallObserver receives one observation per model call.
type CallObserver interface {
	ObserveLLMCall(stage string, duration time.Duration, err error)
}

// Client implements ports.TextGenerator on top of the Gemini API.
type Client struct {
	client   *genai.Client
	initErr  error
	model    string
	timeout  time.Duration
	exec     *resilience.Executor
	observer CallObserver
}

type Option func(*Client)

func WithObserver(observer CallObserver) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// New builds the client. A missing or rejected API key is not reported here;
// it surfaces as an upstream error on the first call.
func New(ctx context.Context, cfg Config, exec *resilience.Executor, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if exec == nil {
		exec = resilience.NewExecutor(resilience.Config{Enabled: false})
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		slog.Warn("gemini_client_init_failed", "error", err)
	}

	c := &Client{
		client:  client,
		initErr: err,
		model:   strings.TrimSpace(cfg.Model),
		timeout: timeout,
		exec:    exec,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Generate(ctx context.Context, stage domain.Stage, prompt string) (string, error) {
	return c.generate(ctx, stage, prompt, nil)
}

// replySchema is the suggested reply object the drafting prompt asks for.
var replySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"assunto":  {Type: genai.TypeString},
		"conteudo": {Type: genai.TypeString},
	},
	Required: []string{"assunto", "conteudo"},
}

// GenerateJSON constrains the answer to the suggested reply object.
func (c *Client) GenerateJSON(ctx context.Context, stage domain.Stage, prompt string) (string, error) {
	return c.generate(ctx, stage, prompt, &genai.GenerateContentConfig{
		CandidateCount:   1,
		ResponseMIMEType: "application/json",
		ResponseSchema:   replySchema,
	})
}

func (c *Client) generate(ctx context.Context, stage domain.Stage, prompt string, config *genai.GenerateContentConfig) (string, error) {
	operation := "gemini " + string(stage)
	if c.initErr != nil {
		return "", domain.WrapError(domain.ErrUpstream, operation, c.initErr)
	}

	start := time.Now()
	var text string
	err := c.exec.Execute(ctx, operation, func(callCtx context.Context) error {
		callCtx, cancel := context.WithTimeout(callCtx, c.timeout)
		defer cancel()

		resp, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(prompt), config)
		if err != nil {
			return err
		}
		text, err = responseText(resp)
		return err
	}, recordFailure)

	if c.observer != nil {
		c.observer.ObserveLLMCall(string(stage), time.Since(start), err)
	}
	if err != nil {
		if resilience.IsCircuitOpen(err) {
			slog.Warn("llm_call_rejected", "stage", string(stage), "reason", "circuit_open")
		}
		return "", translateError(operation, err)
	}
	return text, nil
}

// responseText rejects answers with no usable text, such as a blocked prompt
// or a candidate stopped for safety.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errEmptyResponse
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", errEmptyResponse, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", errEmptyResponse
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		if reason := resp.Candidates[0].FinishReason; reason != "" {
			return "", fmt.Errorf("%w: finish reason %s", errEmptyResponse, reason)
		}
		return "", errEmptyResponse
	}
	return text, nil
}
