package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/BiciFlow-api/internal/application/code"
	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
)

// CodeHandler maneja los códigos de invitación (SELLER).
type CodeHandler struct {
	uc *code.CodeUseCase
}

// NewCodeHandler construye el handler.
func NewCodeHandler(uc *code.CodeUseCase) *CodeHandler {
	return &CodeHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar un código de invitación
// @Tags         codes
// @Produce      json
// @Success      201  {object}  dto.CodeResponse
// @Router       /api/codes [post]
func (h *CodeHandler) Generate(c *fiber.Ctx) error {
	out, err := h.uc.Generate(GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar códigos de la empresa
// @Tags         codes
// @Produce      json
// @Param        cursor  query  string  false  "id del primer elemento de la página"
// @Success      200  {object}  dto.CodesPage
// @Router       /api/codes [get]
func (h *CodeHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(GetCompanyID(c), c.Query("cursor"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(page)
}

// Delete godoc
// @Summary      Borrar un código
// @Tags         codes
// @Produce      json
// @Param        id  path  string  true  "id del código"
// @Success      200  {object}  dto.CodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/codes/{id} [delete]
func (h *CodeHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(GetCompanyID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el código no existe"})
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "el código pertenece a otra empresa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
