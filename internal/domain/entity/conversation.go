package entity

import "time"

// Roles de los mensajes del asistente.
const (
	MessageRoleUser = "USER"
	MessageRoleAI   = "AI"
)

// Conversation una por par (company, seller). Se crea de forma perezosa
// en la primera visita del vendedor a su panel.
type Conversation struct {
	ID        string
	CompanyID string
	SellerID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message mensaje de una conversación. Los mensajes se agregan, nunca
// se editan ni se borran.
type Message struct {
	ID             string
	ConversationID string
	Content        string
	Role           string // USER | AI
	CreatedAt      time.Time
}
