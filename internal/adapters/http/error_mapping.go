package httpadapter

import (
	"errors"
	"net/http"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
	"github.com/kirillkom/email-triage-assistant/internal/core/usecase"
)

const (
	msgEmptyText       = "O campo de texto está vazio."
	msgUnsupportedFile = "Formato de arquivo não suportado. Por favor, use .txt or .pdf."
	msgUnreadableFile  = "Não foi possível ler o conteúdo do arquivo."
	msgInvalidBody     = "Corpo da requisição inválido."
	msgMissingFile     = "Envie o arquivo no campo 'file'."
	msgFileTooLarge    = "Arquivo muito grande."
	msgMethod          = "Método não permitido."
	msgQuota           = "Limite diário de créditos da IA excedida. Tente novamente amanhã."
	msgClassify        = "Erro ao comunicar com a IA."
	msgDraftReply      = "Erro ao gerar sugestão de resposta."
	msgExtractTasks    = "Erro ao gerar tarefas."
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// userMessage picks the localized detail shown to the frontend.
func userMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrEmptyText):
		return msgEmptyText
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return msgUnsupportedFile
	case domain.IsKind(err, domain.ErrInvalidInput):
		return msgUnreadableFile
	case domain.IsKind(err, domain.ErrQuotaExceeded):
		return msgQuota
	}

	switch domain.StageOf(err) {
	case domain.StageDraftReply:
		return msgDraftReply
	case domain.StageExtractTasks:
		return msgExtractTasks
	default:
		return msgClassify
	}
}
