package usecase

import (
	"fmt"

	"github.com/kirillkom/email-triage-assistant/internal/core/domain"
)

func buildClassificationPrompt(text string) string {
	return fmt.Sprintf(`Você faz a triagem de e-mails corporativos. Classifique o e-mail abaixo em exatamente uma de duas categorias, 'Produtivo' ou 'Improdutivo', conforme o impacto no trabalho de quem o recebe.

Critérios:
- 'Produtivo': contém informação de negócio relevante ou pede alguma ação. Exemplos: faturas, relatórios, perguntas de clientes, problemas técnicos, agendamentos, reclamações urgentes.
- Atenção: e-mails apenas informativos sobre assuntos críticos do negócio (confirmação de pagamento, andamento de projeto, documentos jurídicos) também são 'Produtivo', mesmo sem ação imediata.
- 'Improdutivo': pode ser ignorado sem consequência direta no trabalho. Exemplos: spam, newsletters, publicidade, notificações de redes sociais, avisos de baixa prioridade.

Regra de decisão: se este e-mail fosse apagado sem ser lido, haveria impacto negativo? Se sim, é 'Produtivo'.

Responda SOMENTE com a palavra 'Produtivo' ou 'Improdutivo'.

E-mail:
---
%s
---
Classificação:`, text)
}

func buildReplyPrompt(text string, category domain.Category) string {
	return fmt.Sprintf(`Você é um assistente de e-mail. Escreva uma sugestão de resposta profissional para o e-mail abaixo.
Devolva apenas um objeto JSON com as chaves "assunto" e "conteudo".

Categoria do e-mail: %s
E-mail original:
---
%s
---

Orientações:
- assunto: título de resposta adequado, no formato "Re: [Assunto Original]".
- conteudo: corpo da resposta. Se a categoria for 'Produtivo', confirme a ação solicitada. Se for 'Improdutivo', sugira uma resposta curta e neutra, própria para arquivamento.

JSON:`, category, text)
}

func buildTasksPrompt(text string) string {
	return fmt.Sprintf(`Você é um assistente de produtividade. Leia o e-mail e extraia as ações concretas que cabem ao destinatário.

E-mail:
---
%s
---

Orientações:
- Liste somente tarefas do destinatário, sem citar o nome do responsável.
- Separe as tarefas com ponto e vírgula (;).
- Se não houver tarefa clara, responda apenas "Não há tarefas pendentes".

Exemplo: "Revisar a proposta de orçamento; Enviar feedback até sexta-feira; Agendar reunião com o time de marketing"

Tarefas:`, text)
}
