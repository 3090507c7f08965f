// Package assistant is the mock response generator. It is a pure
// (history, context) -> string producer; persistence and transport live
// elsewhere so a real model client can slot in behind the same shape.
package assistant

import "strings"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one prior turn of the dialogue.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProjectContext carries the campaign fields the templates interpolate.
// Every field is optional; missing fields simply drop their fragment.
type ProjectContext struct {
	LeadName       string `json:"leadName"`
	LeadCompany    string `json:"leadCompany"`
	ProjectName    string `json:"projectName"`
	CompanyName    string `json:"companyName"`
	ValueArguments string `json:"valueArguments"`
	ProblemSolved  string `json:"problemSolved"`
}

var suggestions = []string{
	"Obrigado pelo seu interesse! Gostaria de agendar uma conversa rápida para entender melhor suas necessidades?",
	"Que tal marcarmos uma demonstração para você ver nossa solução em ação?",
	"Posso enviar mais informações sobre como podemos ajudar sua empresa?",
	"Você gostaria de conhecer alguns casos de sucesso de clientes similares?",
	"Qual seria o melhor horário para conversarmos com mais detalhes?",
	"Tem alguma dúvida específica que posso esclarecer agora?",
}

// Generate produces a canned reply interpolated around whatever context
// fields are present.
func Generate(history []ChatMessage, ctx *ProjectContext) string {
	var b strings.Builder
	b.WriteString("Olá! Obrigado pelo seu interesse. ")

	if ctx != nil {
		if ctx.CompanyName != "" {
			b.WriteString("Vejo que você está interessado em soluções para " + ctx.CompanyName + ". ")
		}
		if ctx.ValueArguments != "" {
			b.WriteString("Nossa proposta de valor é: " + ctx.ValueArguments + ". ")
		}
		if ctx.ProblemSolved != "" {
			b.WriteString("Ajudamos a resolver: " + ctx.ProblemSolved + ". ")
		}
	}

	b.WriteString("Gostaria de agendar uma conversa para entender melhor suas necessidades específicas?")
	return b.String()
}

// Suggest picks the next-message suggestion from a fixed list, cycling with
// the length of the history so consecutive calls vary.
func Suggest(history []ChatMessage, ctx *ProjectContext) string {
	return suggestions[len(history)%len(suggestions)]
}
