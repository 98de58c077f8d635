package ports

import "context"

// Roles del protocolo de chat-completions.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage un turno del prompt enviado al modelo.
type ChatMessage struct {
	Role    string
	Content string
}

// LLMService define el puerto de salida hacia la API de chat-completions.
// Cualquier adaptador (OpenAI, compatible, mock) debe implementar esta
// interfaz. Siguiendo DIP, la aplicación solo conoce este contrato.
type LLMService interface {
	// ChatCompletion envía el prompt completo (system + historial +
	// mensaje actual) y devuelve el texto de la respuesta del modelo.
	// El contexto debe llevar un timeout para evitar bloqueos en
	// llamadas externas.
	ChatCompletion(ctx context.Context, messages []ChatMessage) (string, error)
}
