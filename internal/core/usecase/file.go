package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
	"github.com/kirillkom/email-triage-assistant/internal/core/ports"
)

// FileTriageUseCase extracts text from an uploaded file according to its
// extension and hands it to the text triage pipeline with the filename as
// source.
type FileTriageUseCase struct {
	triager    ports.EmailTriager
	extractors map[string]ports.TextExtractor
}

func NewFileTriageUseCase(triager ports.EmailTriager, extractors map[string]ports.TextExtractor) *FileTriageUseCase {
	normalized := make(map[string]ports.TextExtractor, len(extractors))
	for ext, extractor := range extractors {
		normalized[strings.ToLower(ext)] = extractor
	}
	return &FileTriageUseCase{
		triager:    triager,
		extractors: normalized,
	}
}

func (uc *FileTriageUseCase) TriageFile(ctx context.Context, filename string, body io.Reader) (*domain.TriageResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := uc.extractors[ext]
	if !ok {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"triage file",
			fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext),
		)
	}

	text, err := extractor.Extract(ctx, filename, body)
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", filename, err)
	}

	return uc.triager.Triage(ctx, text, filename)
}

// ErrUnsupportedFileType marks uploads whose extension has no extractor.
var ErrUnsupportedFileType = errors.New("unsupported file type")
