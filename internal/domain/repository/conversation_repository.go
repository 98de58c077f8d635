package repository

import "github.com/jhoicas/BiciFlow-api/internal/domain/entity"

// ConversationRepository puerto de persistencia para conversaciones y
// mensajes del asistente.
type ConversationRepository interface {
	Create(c *entity.Conversation) error
	GetByID(id string) (*entity.Conversation, error)
	// FindByCompanyAndSeller devuelve la conversación del par, (nil, nil)
	// si aún no existe (se crea de forma perezosa).
	FindByCompanyAndSeller(companyID, sellerID string) (*entity.Conversation, error)
	CreateMessage(m *entity.Message) error
	// ListMessages todos los mensajes en orden cronológico ascendente.
	ListMessages(conversationID string) ([]*entity.Message, error)
	// ListRecentMessages los últimos limit mensajes, en orden ascendente.
	ListRecentMessages(conversationID string, limit int) ([]*entity.Message, error)
}
