package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/BiciFlow-api/internal/application/billing"
)

// Verificar en tiempo de compilación que Client implementa CheckoutClient.
var _ billing.CheckoutClient = (*Client)(nil)

const defaultAPIBase = "https://api.stripe.com/v1"

// Client adaptador del proveedor de pagos sobre su API REST
// (form-encoded). Usa net/http de la librería estándar; no requiere el
// SDK oficial.
type Client struct {
	secretKey  string
	apiBase    string
	httpClient *http.Client
}

// NewClient construye el adaptador. apiBase vacío usa la API pública.
func NewClient(secretKey, apiBase string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &Client{
		secretKey: secretKey,
		apiBase:   apiBase,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type sessionResponse struct {
	URL   string `json:"url"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSubscriptionSession crea una sesión de checkout en modo
// suscripción. El user_id viaja en metadata para que el webhook pueda
// resolver a qué usuario pertenece el pago.
func (c *Client) CreateSubscriptionSession(ctx context.Context, p billing.CheckoutParams) (string, error) {
	if c.secretKey == "" {
		return "", fmt.Errorf("payment: BILLING_SECRET_KEY no configurado")
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("customer_email", p.CustomerEmail)
	form.Set("line_items[0][price]", p.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[user_id]", p.UserID)
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("payment: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("payment: leer respuesta: %w", err)
	}

	var session sessionResponse
	if err := json.Unmarshal(rawBody, &session); err != nil {
		return "", fmt.Errorf("payment: deserializar respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if session.Error != nil {
			return "", fmt.Errorf("payment: error del proveedor (%s): %s", session.Error.Type, session.Error.Message)
		}
		return "", fmt.Errorf("payment: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if session.URL == "" {
		return "", fmt.Errorf("payment: la sesión no trae URL de redirección")
	}
	return session.URL, nil
}
