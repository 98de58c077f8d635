package entity

import "time"

// Estados de una BikeRequest. PENDING es el único estado no terminal:
// PENDING -> APPROVED | REJECTED, sin transición de salida después.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// BikeRequest solicitud de un BUYER a un SELLER por un modelo de
// bicicleta. SellerID es el destinatario original; DecidedByID registra
// qué SELLER de la empresa tomó realmente la decisión.
type BikeRequest struct {
	ID          string
	BikeModel   string
	Reason      string // redactada por el comprador
	Notes       string // redactada por el vendedor al decidir
	URL         string // imagen adjunta, opcional
	Status      string // PENDING | APPROVED | REJECTED
	BuyerID     string
	SellerID    string
	DecidedByID string // vacío mientras está PENDING
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Decided indica si la solicitud ya está en estado terminal.
func (r *BikeRequest) Decided() bool {
	return r.Status != StatusPending
}

// BikeRequestView solicitud con los datos del comprador y del vendedor
// ya unidos, para los listados y el detalle.
type BikeRequestView struct {
	BikeRequest
	Buyer        UserSummary
	Seller       UserSummary
	BuyerCompany *Company // presente en la vista del comprador y en el detalle
}
