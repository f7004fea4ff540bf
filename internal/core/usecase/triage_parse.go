package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

const noTasksMarker = "não há tarefas"

func parseCategory(raw string) (domain.Category, error) {
	category, ok := domain.ParseCategory(raw)
	if !ok {
		return "", fmt.Errorf("unexpected category %q", strings.TrimSpace(raw))
	}
	return category, nil
}

// stripCodeFences removes markdown fences the model tends to wrap JSON in.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func parseSuggestedReply(raw string) (domain.SuggestedReply, error) {
	var payload struct {
		Subject *string `json:"assunto"`
		Body    *string `json:"conteudo"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payload); err != nil {
		return domain.SuggestedReply{}, fmt.Errorf("parse reply json: %w", err)
	}
	if payload.Subject == nil || payload.Body == nil {
		return domain.SuggestedReply{}, errors.New("reply json is missing assunto or conteudo")
	}
	return domain.SuggestedReply{
		Subject: strings.TrimSpace(*payload.Subject),
		Body:    strings.TrimSpace(*payload.Body),
	}, nil
}

// parseTasks splits a semicolon separated task listing. Empty segments, such
// as the one left by a trailing separator, are dropped.
func parseTasks(raw string) []string {
	tasks := []string{}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.Contains(strings.ToLower(trimmed), noTasksMarker) {
		return tasks
	}
	for _, segment := range strings.Split(trimmed, ";") {
		task := strings.TrimSpace(segment)
		if task == "" {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}
