package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/BiciFlow-api/internal/application/billing"
	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/payment"
	"github.com/jhoicas/BiciFlow-api/pkg/logger"
)

// BillingHandler maneja el checkout de suscripción y el webhook del
// proveedor de pagos.
type BillingHandler struct {
	uc            *billing.BillingUseCase
	webhookSecret string
	log           *logger.Logger
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.BillingUseCase, webhookSecret string, log *logger.Logger) *BillingHandler {
	return &BillingHandler{uc: uc, webhookSecret: webhookSecret, log: log}
}

// CreateCheckoutSession godoc
// @Summary      Crear sesión de checkout para la suscripción PRO
// @Tags         billing
// @Produce      json
// @Success      200  {object}  dto.CheckoutSessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/billing/checkout [post]
func (h *BillingHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	url, err := h.uc.CreateCheckoutSession(c.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "solo un vendedor puede suscribirse"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.CheckoutSessionResponse{URL: url})
}

// Webhook godoc
// @Summary      Webhook del proveedor de pagos
// @Tags         billing
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/billing/webhook [post]
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")
	if err := payment.VerifySignature(payload, signature, h.webhookSecret, payment.DefaultTolerance); err != nil {
		h.log.Warn().Err(err).Msg("webhook con firma inválida")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma del webhook inválida"})
	}
	if err := h.uc.HandleEvent(payload); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "evento ilegible"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "suscripción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"received": true})
}
