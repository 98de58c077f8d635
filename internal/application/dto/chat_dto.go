package dto

import "time"

// ChatMessageRequest entrada del endpoint POST /api/ai.
type ChatMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"required"`
	Content        string `json:"content" validate:"required,min=1"`
}

// ChatMessageResponse mensaje devuelto (el del asistente).
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"` // USER | AI
	Timestamp time.Time `json:"timestamp"`
}

// ConversationResponse conversación del vendedor con su historial.
type ConversationResponse struct {
	ID       string                `json:"id"`
	Messages []ChatMessageResponse `json:"messages"`
}

// UserActivity desglose de solicitudes por usuario para la vista
// agregada de la empresa.
type UserActivity struct {
	Firstname string
	Lastname  string
	Email     string
	Role      string
	Pending   int
	Approved  int
	Rejected  int
}

// CompanySnapshot proyección de solo lectura de la empresa que alimenta
// el prompt del asistente. Se recalcula completa en cada turno.
type CompanySnapshot struct {
	Name       string
	Website    string
	TotalUsers int
	Sellers    int
	Buyers     int
	TotalCodes int
	Users      []UserActivity
	Codes      []string
}
