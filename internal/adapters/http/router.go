package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/email-triage-assistant/internal/adapters/http/openapi"
	"github.com/kirillkom/email-triage-assistant/internal/config"
	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
	"github.com/kirillkom/email-triage-assistant/internal/core/ports"
)

const (
	metricSourceText = "text"
	metricSourceFile = "file"

	defaultMaxUploadBytes = 10 << 20
	// multipartOverhead leaves room for the boundaries and part headers around
	// the uploaded file.
	multipartOverhead = 64 << 10
)

// Metrics is the observability surface the router reports to. A nil Metrics
// disables /metrics and request instrumentation.
type Metrics interface {
	Handler() http.Handler
	Middleware(next http.Handler) http.Handler
	RecordTriage(source string, result *domain.TriageResult, duration time.Duration)
	RecordTriageFailure(err error)
}

// CircuitReporter exposes the model call breakers on /healthz.
type CircuitReporter interface {
	States() map[string]string
}

type Router struct {
	cfg         config.Config
	triager     ports.EmailTriager
	fileTriager ports.FileTriager
	metrics     Metrics
	circuits    CircuitReporter
}

type Option func(*Router)

func WithCircuitReporter(circuits CircuitReporter) Option {
	return func(rt *Router) {
		rt.circuits = circuits
	}
}

func NewRouter(
	cfg config.Config,
	triager ports.EmailTriager,
	fileTriager ports.FileTriager,
	metrics Metrics,
	opts ...Option,
) *Router {
	rt := &Router{
		cfg:         cfg,
		triager:     triager,
		fileTriager: fileTriager,
		metrics:     metrics,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/openapi.yaml", rt.openAPIDocument)
	mux.HandleFunc("/processing-text", rt.processText)
	mux.HandleFunc("/processing-file", rt.processFile)

	var handler http.Handler = mux
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		handler = rt.metrics.Middleware(handler)
	}
	handler = corsMiddleware(rt.cfg.AllowedOrigins, handler)
	handler = recoverMiddleware(handler)
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

// healthz stays 200 while a circuit is open; the process itself is healthy.
func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]any{"status": "ok"}
	if rt.circuits != nil {
		payload["circuits"] = rt.circuits.States()
	}
	writeJSON(w, http.StatusOK, payload)
}

func (rt *Router) openAPIDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeDetail(w, http.StatusMethodNotAllowed, msgMethod)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Document())
}

func (rt *Router) processText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, msgMethod)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	body := http.MaxBytesReader(w, r.Body, rt.maxUploadBytes())
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	start := time.Now()
	result, err := rt.triager.Triage(r.Context(), req.Text, domain.SourceJSONText)
	if err != nil {
		rt.writeTriageError(w, r, err)
		return
	}
	rt.recordTriage(metricSourceText, result, time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) processFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, msgMethod)
		return
	}

	// MAX_UPLOAD_BYTES bounds the file itself; the request body may carry the
	// multipart envelope on top of it.
	bodyLimit := rt.maxUploadBytes() + multipartOverhead
	if r.ContentLength > bodyLimit {
		writeDetail(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeDetail(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		writeDetail(w, http.StatusBadRequest, msgMissingFile)
		return
	}
	defer file.Close()
	if fileHeader.Size > rt.maxUploadBytes() {
		writeDetail(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		return
	}

	start := time.Now()
	result, err := rt.fileTriager.TriageFile(r.Context(), fileHeader.Filename, file)
	if err != nil {
		rt.writeTriageError(w, r, err)
		return
	}
	rt.recordTriage(metricSourceFile, result, time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) maxUploadBytes() int64 {
	if rt.cfg.MaxUploadBytes > 0 {
		return rt.cfg.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

func (rt *Router) recordTriage(source string, result *domain.TriageResult, duration time.Duration) {
	if rt.metrics != nil {
		rt.metrics.RecordTriage(source, result, duration)
	}
}

// writeTriageError is the single place a triage failure is logged.
func (rt *Router) writeTriageError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	attrs := []any{
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"stage", string(domain.StageOf(err)),
		"kind", domain.KindOf(err),
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		slog.Error("triage_failed", attrs...)
	} else {
		slog.Warn("triage_failed", attrs...)
	}

	if rt.metrics != nil {
		rt.metrics.RecordTriageFailure(err)
	}
	writeDetail(w, status, userMessage(err))
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
