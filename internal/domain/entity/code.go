package entity

import "time"

// Code código de invitación de 6 dígitos, único en todo el sistema y
// ligado a una Company. Un SELLER lo emite; un BUYER lo consume
// exactamente una vez durante el onboarding.
type Code struct {
	ID        string
	Code      string // 6 dígitos numéricos
	CompanyID string
	Used      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
