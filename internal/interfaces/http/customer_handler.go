package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/BiciFlow-api/internal/application/customer"
	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
)

// CustomerHandler maneja el roster de clientes (compradores) del
// vendedor.
type CustomerHandler struct {
	uc *customer.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customer.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar compradores de la empresa
// @Tags         customers
// @Produce      json
// @Param        cursor  query  string  false  "id del primer elemento de la página"
// @Success      200  {object}  dto.UsersPage
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(GetCompanyID(c), c.Query("cursor"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(page)
}
