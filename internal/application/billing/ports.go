package billing

import "context"

// CheckoutParams datos para crear la sesión de checkout de suscripción.
type CheckoutParams struct {
	UserID        string // viaja en metadata y vuelve en el webhook
	CustomerEmail string
	PriceID       string
	SuccessURL    string
	CancelURL     string
}

// CheckoutClient puerto de salida hacia el proveedor de pagos.
type CheckoutClient interface {
	// CreateSubscriptionSession crea la sesión y devuelve la URL de
	// redirección del checkout.
	CreateSubscriptionSession(ctx context.Context, p CheckoutParams) (string, error)
}

// EmailSender puerto de salida para correo transaccional.
type EmailSender interface {
	SendHTML(to, subject, htmlBody string) error
}
