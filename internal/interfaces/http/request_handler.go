package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/application/request"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
)

// RequestHandler maneja las solicitudes de bicicleta. Las mutaciones
// responden con el cuerpo discriminado {success, ...} / {success:false,
// error} que consume el frontend.
type RequestHandler struct {
	uc *request.RequestUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *request.RequestUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de bicicleta
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBikeRequestRequest  true  "seller_id, bike_model, reason"
// @Success      201   {object}  dto.CreateBikeRequestResult
// @Failure      400   {object}  dto.CreateBikeRequestResult
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBikeRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateBikeRequestResult{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.CreateBikeRequestResult{Error: "seller_id, bike_model y reason son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.CreateBikeRequestResult{Error: "el vendedor no existe"})
		case errors.Is(err, domain.ErrInvalidRole):
			return c.Status(fiber.StatusBadRequest).JSON(dto.CreateBikeRequestResult{Error: "el destinatario no es un vendedor"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.CreateBikeRequestResult{Error: "error interno"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateBikeRequestResult{Success: true, BikeRequest: out})
}

// ListForBuyer godoc
// @Summary      Listar mis solicitudes (comprador)
// @Tags         requests
// @Produce      json
// @Param        cursor  query  string  false  "id del primer elemento de la página"
// @Success      200  {object}  dto.BikeRequestsPage
// @Router       /api/buyer/requests [get]
func (h *RequestHandler) ListForBuyer(c *fiber.Ctx) error {
	page, err := h.uc.ListForBuyer(GetUserID(c), c.Query("cursor"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(page)
}

// ListForSeller godoc
// @Summary      Listar solicitudes recibidas (vendedor)
// @Tags         requests
// @Produce      json
// @Param        cursor  query  string  false  "id del primer elemento de la página"
// @Success      200  {object}  dto.BikeRequestsPage
// @Router       /api/seller/requests [get]
func (h *RequestHandler) ListForSeller(c *fiber.Ctx) error {
	page, err := h.uc.ListForSeller(GetUserID(c), c.Query("cursor"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(page)
}

// GetByID godoc
// @Summary      Detalle de una solicitud
// @Tags         requests
// @Produce      json
// @Param        id  path  string  true  "id de la solicitud"
// @Success      200  {object}  dto.BikeRequestViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la solicitud no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Aprobar o rechazar una solicitud
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la solicitud"
// @Param        body  body  dto.DecideRequestRequest  true  "status APPROVED|REJECTED, notes"
// @Success      200   {object}  dto.DecideRequestResult
// @Failure      401   {object}  dto.DecideRequestResult
// @Failure      409   {object}  dto.DecideRequestResult
// @Router       /api/requests/{id}/status [patch]
func (h *RequestHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.DecideRequestResult{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Decide(GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.DecideRequestResult{Error: "status debe ser APPROVED o REJECTED"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.DecideRequestResult{Error: "la solicitud no existe"})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.DecideRequestResult{Error: "Unauthorized"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.DecideRequestResult{Error: "la solicitud ya fue decidida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.DecideRequestResult{Error: "error interno"})
	}
	message := "Request rejected"
	if out.Status == entity.StatusApproved {
		message = "Request approved"
	}
	return c.JSON(dto.DecideRequestResult{Success: true, Message: message, Request: out})
}
