package httpadapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestAccessLogRecordsStatusAndRequestID(t *testing.T) {
	logs := captureLogs(t)
	handler := requestIDMiddleware(accessLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusBadRequest, msgEmptyText)
	})))

	req := httptest.NewRequest(http.MethodPost, "/processing-text", nil)
	req.Header.Set(requestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(logs.Bytes()), &entry); err != nil {
		t.Fatalf("decode access log %q: %v", logs.String(), err)
	}
	if entry["msg"] != "http_request" || entry["level"] != "WARN" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
	if entry["request_id"] != "req-42" || entry["status"] != float64(http.StatusBadRequest) {
		t.Fatalf("unexpected log attributes: %v", entry)
	}
	if entry["bytes"].(float64) <= 0 {
		t.Fatalf("expected written bytes to be recorded: %v", entry)
	}
}

func TestRecoverMiddlewareReturnsJSON500(t *testing.T) {
	captureLogs(t)
	handler := recoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/processing-text", nil))
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != msgClassify {
		t.Fatalf("unexpected detail %q", body["detail"])
	}
}
