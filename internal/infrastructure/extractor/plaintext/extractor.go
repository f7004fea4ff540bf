package plaintext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

// Extractor decodes .txt uploads as UTF-8.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, filename string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", domain.WrapError(domain.ErrInvalidInput, "read text upload", err)
	}

	if !utf8.Valid(raw) {
		return "", domain.WrapError(
			domain.ErrInvalidInput,
			"decode text upload",
			fmt.Errorf("%s: %w", filename, errInvalidUTF8),
		)
	}
	return string(raw), nil
}

var errInvalidUTF8 = errors.New("content is not valid utf-8")
