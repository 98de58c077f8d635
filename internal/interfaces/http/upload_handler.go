package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/application/upload"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
)

// UploadHandler maneja la subida de imágenes de solicitudes.
type UploadHandler struct {
	uc *upload.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *upload.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Store godoc
// @Summary      Subir la imagen de una solicitud (multipart, ≤512KB)
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "imagen jpeg/png/webp/gif"
// @Param        request_id  formData  string  false  "solicitud a la que ligar la URL"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/uploads/bike-image [post]
func (h *UploadHandler) Store(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere el campo file"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	out, err := h.uc.Store(c.Context(), GetUserID(c), c.FormValue("request_id"), contentType, fileHeader.Size, f)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
