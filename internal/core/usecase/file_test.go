package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
	"github.com/kirillkom/email-triage-assistant/internal/core/ports"
)

type extractorFake struct {
	calls int
	err   error
}

func (f *extractorFake) Extract(_ context.Context, _ string, body io.Reader) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func TestTriageFileUsesFilenameAsSource(t *testing.T) {
	gen := newGeneratorFake(productiveResponses())
	txt := &extractorFake{}
	uc := NewFileTriageUseCase(NewTriageUseCase(gen), map[string]ports.TextExtractor{".txt": txt})

	result, err := uc.TriageFile(context.Background(), "Proposta.TXT", strings.NewReader("Segue a proposta."))
	if err != nil {
		t.Fatalf("TriageFile() error = %v", err)
	}
	if result.Source != "Proposta.TXT" {
		t.Fatalf("expected filename as source, got %q", result.Source)
	}
	if txt.calls != 1 {
		t.Fatalf("expected one extraction, got %d", txt.calls)
	}
}

func TestTriageFileRejectsUnsupportedExtension(t *testing.T) {
	gen := newGeneratorFake(productiveResponses())
	txt := &extractorFake{}
	pdf := &extractorFake{}
	uc := NewFileTriageUseCase(NewTriageUseCase(gen), map[string]ports.TextExtractor{".txt": txt, ".pdf": pdf})

	for _, name := range []string{"email.docx", "email", "email.txt.zip"} {
		_, err := uc.TriageFile(context.Background(), name, strings.NewReader("conteúdo"))
		if !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %s, got %v", name, err)
		}
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Fatalf("expected unsupported file type for %s, got %v", name, err)
		}
	}
	if txt.calls+pdf.calls != 0 {
		t.Fatalf("no extractor should run for unsupported files")
	}
	if gen.totalCalls() != 0 {
		t.Fatalf("model must not be called for unsupported files, got %d calls", gen.totalCalls())
	}
}

func TestTriageFilePropagatesExtractionError(t *testing.T) {
	gen := newGeneratorFake(productiveResponses())
	pdf := &extractorFake{err: domain.WrapError(domain.ErrInvalidInput, "extract pdf", errors.New("broken xref"))}
	uc := NewFileTriageUseCase(NewTriageUseCase(gen), map[string]ports.TextExtractor{".pdf": pdf})

	_, err := uc.TriageFile(context.Background(), "fatura.pdf", strings.NewReader("%PDF-"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if gen.totalCalls() != 0 {
		t.Fatalf("model must not be called when extraction fails")
	}
}

func TestTriageFileWithEmptyTextIsInvalidInput(t *testing.T) {
	gen := newGeneratorFake(productiveResponses())
	uc := NewFileTriageUseCase(NewTriageUseCase(gen), map[string]ports.TextExtractor{".txt": &extractorFake{}})

	_, err := uc.TriageFile(context.Background(), "vazio.txt", strings.NewReader("  \n"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if gen.totalCalls() != 0 {
		t.Fatalf("model must not be called for empty files")
	}
}
