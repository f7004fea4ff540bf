package metrics

import (
	"time"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

// RecordTriage observes a successful triage. source is the input kind
// ("text" or "file"), never the uploaded filename.
func (m *HTTPServerMetrics) RecordTriage(source string, result *domain.TriageResult, duration time.Duration) {
	if result == nil {
		return
	}
	m.triageRequestsTotal.WithLabelValues(source, string(result.Category)).Inc()
	m.triageTasks.WithLabelValues(source).Observe(float64(len(result.Tasks)))
	m.triageDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordTriageFailure(err error) {
	if err == nil {
		return
	}
	stage := string(domain.StageOf(err))
	if stage == "" {
		stage = "input"
	}
	m.triageFailuresTotal.WithLabelValues(stage, domain.KindOf(err)).Inc()
}

// ObserveLLMCall records one model call; it satisfies gemini.CallObserver.
func (m *HTTPServerMetrics) ObserveLLMCall(stage string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = domain.KindOf(err)
	}
	m.llmCallsTotal.WithLabelValues(stage, status).Inc()
	m.llmCallDuration.WithLabelValues(stage).Observe(duration.Seconds())
}
