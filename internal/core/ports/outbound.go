package ports

import (
	"context"
	"io"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

// TextGenerator sends a single prompt to the generative model and returns its
// textual answer. Stage labels the call for breakers and metrics.
type TextGenerator interface {
	Generate(ctx context.Context, stage domain.Stage, prompt string) (string, error)
	// GenerateJSON asks the model for a JSON object answer. Callers must still
	// tolerate markdown fences around the payload.
	GenerateJSON(ctx context.Context, stage domain.Stage, prompt string) (string, error)
}

// TextExtractor turns an uploaded file body into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, body io.Reader) (string, error)
}
