package usecase

import (
	"context"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
	"github.com/kirillkom/email-triage-assistant/internal/core/ports"
)

// TextClassifier decides whether an email is Produtivo or Improdutivo.
type TextClassifier struct {
	generator ports.TextGenerator
}

func NewTextClassifier(generator ports.TextGenerator) *TextClassifier {
	return &TextClassifier{generator: generator}
}

func (c *TextClassifier) Classify(ctx context.Context, text string) (domain.Category, error) {
	raw, err := c.generator.Generate(ctx, domain.StageClassify, buildClassificationPrompt(text))
	if err != nil {
		return "", domain.NewStageError(domain.StageClassify, err)
	}
	category, err := parseCategory(raw)
	if err != nil {
		return "", domain.NewStageError(domain.StageClassify, err)
	}
	return category, nil
}

// ReplyDrafter drafts a suggested reply conditioned on the category.
type ReplyDrafter struct {
	generator ports.TextGenerator
}

func NewReplyDrafter(generator ports.TextGenerator) *ReplyDrafter {
	return &ReplyDrafter{generator: generator}
}

func (d *ReplyDrafter) Draft(ctx context.Context, text string, category domain.Category) (domain.SuggestedReply, error) {
	raw, err := d.generator.GenerateJSON(ctx, domain.StageDraftReply, buildReplyPrompt(text, category))
	if err != nil {
		return domain.SuggestedReply{}, domain.NewStageError(domain.StageDraftReply, err)
	}
	reply, err := parseSuggestedReply(raw)
	if err != nil {
		return domain.SuggestedReply{}, domain.NewStageError(domain.StageDraftReply, err)
	}
	return reply, nil
}

// TaskExtractor returns the raw semicolon separated task listing.
type TaskExtractor struct {
	generator ports.TextGenerator
}

func NewTaskExtractor(generator ports.TextGenerator) *TaskExtractor {
	return &TaskExtractor{generator: generator}
}

func (e *TaskExtractor) Extract(ctx context.Context, text string) (string, error) {
	raw, err := e.generator.Generate(ctx, domain.StageExtractTasks, buildTasksPrompt(text))
	if err != nil {
		return "", domain.NewStageError(domain.StageExtractTasks, err)
	}
	return raw, nil
}
