package entity

import "time"

// Planes de suscripción. El asistente IA requiere PRO.
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

// Subscription suscripción de un SELLER. Se crea en FREE junto con el
// usuario; el webhook del proveedor de pagos la sube a PRO.
type Subscription struct {
	ID         string
	UserID     string
	CustomerID string // id del cliente en el proveedor de pagos, vacío hasta el primer checkout
	Plan       string // FREE | PRO
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
