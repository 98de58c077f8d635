package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/BiciFlow-api/internal/application/chat"
	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
)

// RateLimiter limita solicitudes por clave. nil desactiva el límite
// (solo dev).
type RateLimiter interface {
	Allow(key string) bool
}

// ChatHandler maneja el asistente IA del vendedor.
type ChatHandler struct {
	uc      *chat.ChatUseCase
	limiter RateLimiter
}

// NewChatHandler construye el handler. limiter puede ser nil.
func NewChatHandler(uc *chat.ChatUseCase, limiter RateLimiter) *ChatHandler {
	return &ChatHandler{uc: uc, limiter: limiter}
}

// GetConversation godoc
// @Summary      Abrir la conversación del vendedor (la crea si no existe)
// @Tags         chat
// @Produce      json
// @Success      200  {object}  dto.ConversationResponse
// @Router       /api/chat/conversation [get]
func (h *ChatHandler) GetConversation(c *fiber.Ctx) error {
	out, err := h.uc.OpenConversation(GetUserID(c), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SendMessage godoc
// @Summary      Enviar un mensaje al asistente
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatMessageRequest  true  "conversationId, content"
// @Success      200   {object}  dto.ChatMessageResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/ai [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	if h.limiter != nil && !h.limiter.Allow(GetUserID(c)) {
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones, intenta más tarde"})
	}
	var in dto.ChatMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SendMessage(c.Context(), GetUserID(c), GetCompanyID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "conversationId y content son requeridos"})
		case errors.Is(err, domain.ErrUpgradeRequired):
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: "UPGRADE_REQUIRED", Message: "el asistente requiere plan PRO"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la conversación no existe"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la conversación pertenece a otra empresa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
