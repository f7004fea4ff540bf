package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
	"github.com/kirillkom/email-triage-assistant/internal/core/ports"
)

// ErrEmptyText is returned when the email text is blank after trimming.
var ErrEmptyText = errors.New("empty email text")

// TriageUseCase runs classify, draft and (for productive email) task
// extraction strictly in sequence. The first failing stage aborts the request.
type TriageUseCase struct {
	classifier *TextClassifier
	drafter    *ReplyDrafter
	extractor  *TaskExtractor
}

func NewTriageUseCase(generator ports.TextGenerator) *TriageUseCase {
	return &TriageUseCase{
		classifier: NewTextClassifier(generator),
		drafter:    NewReplyDrafter(generator),
		extractor:  NewTaskExtractor(generator),
	}
}

func (uc *TriageUseCase) Triage(ctx context.Context, text, source string) (*domain.TriageResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "triage", ErrEmptyText)
	}

	category, err := uc.classifier.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	reply, err := uc.drafter.Draft(ctx, text, category)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks(ctx, text, category)
	if err != nil {
		return nil, err
	}

	return &domain.TriageResult{
		Category:          category,
		SuggestedResponse: reply,
		Tasks:             tasks,
		Source:            source,
	}, nil
}

func (uc *TriageUseCase) tasks(ctx context.Context, text string, category domain.Category) ([]string, error) {
	if !category.IsProductive() {
		return []string{}, nil
	}
	raw, err := uc.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	return parseTasks(raw), nil
}
