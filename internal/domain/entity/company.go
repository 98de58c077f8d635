package entity

import "time"

// Company representa una organización/tenant del sistema. Se crea una
// sola vez, durante el onboarding del primer SELLER, y es dueña de sus
// usuarios, códigos de invitación y conversaciones.
type Company struct {
	ID        string
	Name      string
	Website   string // opcional
	Logo      string // opcional, URL
	CreatedAt time.Time
	UpdatedAt time.Time
}
