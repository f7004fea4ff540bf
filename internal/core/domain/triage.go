package domain

import "strings"

type Category string

const (
	CategoryProductive   Category = "Produtivo"
	CategoryUnproductive Category = "Improdutivo"
)

// ParseCategory matches a model answer against the closed category set.
// Case, surrounding quotes and trailing punctuation are ignored.
func ParseCategory(raw string) (Category, bool) {
	normalized := strings.TrimSpace(raw)
	normalized = strings.Trim(normalized, "\"'`*.!:; \t\r\n")
	switch strings.ToLower(normalized) {
	case "produtivo":
		return CategoryProductive, true
	case "improdutivo":
		return CategoryUnproductive, true
	default:
		return "", false
	}
}

func (c Category) IsProductive() bool {
	return c == CategoryProductive
}

type Stage string

const (
	StageClassify     Stage = "classify"
	StageDraftReply   Stage = "draft_reply"
	StageExtractTasks Stage = "extract_tasks"
)

// SourceJSONText tags results produced from the inline text endpoint.
const SourceJSONText = "json_text"

type SuggestedReply struct {
	Subject string `json:"assunto"`
	Body    string `json:"conteudo"`
}

type TriageResult struct {
	Category          Category       `json:"category"`
	SuggestedResponse SuggestedReply `json:"suggested_response"`
	Tasks             []string       `json:"tasks"`
	Source            string         `json:"source"`
}
