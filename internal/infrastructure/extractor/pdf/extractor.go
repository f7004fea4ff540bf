package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

// Extractor concatenates the plain text of every page in page order with no
// separator between pages.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, filename string, body io.Reader) (string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", domain.WrapError(domain.ErrInvalidInput, "read pdf upload", err)
	}

	text, err := extractPages(ctx, raw)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", domain.WrapError(domain.ErrInvalidInput, "extract pdf text", fmt.Errorf("%s: %w", filename, err))
	}
	return text, nil
}

// extractPages recovers from parser panics, which the pdf package raises on
// malformed documents.
func extractPages(ctx context.Context, raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", err
	}

	var out strings.Builder
	fonts := make(map[string]*pdf.Font)
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageNum, err)
		}
		out.WriteString(pageText)
	}
	return out.String(), nil
}
