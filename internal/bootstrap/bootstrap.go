package bootstrap

import (
	"context"
	"fmt"

	"github.com/kirillkom/email-triage-assistant/internal/adapters/http/openapi"
	"github.com/kirillkom/email-triage-assistant/internal/config"
	"github.com/kirillkom/email-triage-assistant/internal/core/ports"
	"github.com/kirillkom/email-triage-assistant/internal/core/usecase"
	"github.com/kirillkom/email-triage-assistant/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/email-triage-assistant/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/email-triage-assistant/internal/infrastructure/llm/gemini"
	"github.com/kirillkom/email-triage-assistant/internal/infrastructure/resilience"
	"github.com/kirillkom/email-triage-assistant/internal/observability/metrics"
)

const ServiceName = "email-triage-api"

type App struct {
	Config   config.Config
	Metrics  *metrics.HTTPServerMetrics
	Breakers *resilience.Executor

	TriageUC     ports.EmailTriager
	FileTriageUC ports.FileTriager
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if _, err := openapi.Load(ctx); err != nil {
		return nil, fmt.Errorf("init openapi document: %w", err)
	}

	httpMetrics := metrics.NewHTTPServerMetrics(ServiceName)

	breakers := resilience.NewExecutor(resilience.Config{
		Enabled:      cfg.LLMBreakerEnabled,
		MinRequests:  uint32(max(cfg.LLMBreakerMinRequests, 0)),
		FailureRatio: cfg.LLMBreakerFailureRatio,
		OpenTimeout:  cfg.LLMBreakerOpenTimeout(),
	})

	generator := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.LLMTimeout(),
	}, breakers, gemini.WithObserver(httpMetrics))

	triageUC := usecase.NewTriageUseCase(generator)
	fileTriageUC := usecase.NewFileTriageUseCase(triageUC, map[string]ports.TextExtractor{
		".txt": plaintext.NewExtractor(),
		".pdf": pdf.NewExtractor(),
	})

	return &App{
		Config:   cfg,
		Metrics:  httpMetrics,
		Breakers: breakers,

		TriageUC:     triageUC,
		FileTriageUC: fileTriageUC,
	}, nil
}
