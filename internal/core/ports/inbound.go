package ports

import (
	"context"
	"io"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

// EmailTriager is the inbound contract for triaging raw email text.
type EmailTriager interface {
	Triage(ctx context.Context, text, source string) (*domain.TriageResult, error)
}

// FileTriager is the inbound contract for triaging an uploaded email file.
type FileTriager interface {
	TriageFile(ctx context.Context, filename string, body io.Reader) (*domain.TriageResult, error)
}
