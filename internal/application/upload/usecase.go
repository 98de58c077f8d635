package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
	"github.com/jhoicas/BiciFlow-api/pkg/logger"
)

// MaxImageSize tope de la imagen adjunta (512 KB).
const MaxImageSize = 512 * 1024

// extensions tipos de imagen aceptados y su extensión de objeto.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStore puerto de salida hacia el almacenamiento de objetos.
type ObjectStore interface {
	// Save sube el objeto y devuelve su URL durable.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// UploadUseCase subida de la imagen de una solicitud y enlace de la URL
// resultante a la solicitud del comprador.
type UploadUseCase struct {
	store       ObjectStore
	requestRepo repository.BikeRequestRepository
	log         *logger.Logger
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(store ObjectStore, requestRepo repository.BikeRequestRepository, log *logger.Logger) *UploadUseCase {
	return &UploadUseCase{store: store, requestRepo: requestRepo, log: log}
}

// Store valida y sube una imagen. Si requestID no está vacío intenta
// ligar la URL a la solicitud del comprador; si ese enlace falla después
// de subir, la URL igualmente se devuelve (inconsistencia aceptada, no
// se recupera).
func (uc *UploadUseCase) Store(ctx context.Context, callerID, requestID, contentType string, size int64, r io.Reader) (*dto.UploadResponse, error) {
	if size <= 0 || size > MaxImageSize {
		return nil, fmt.Errorf("%w: la imagen debe pesar entre 1 byte y 512KB", domain.ErrInvalidInput)
	}
	ext, ok := extensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: tipo %s no permitido (jpeg/png/webp/gif)", domain.ErrInvalidInput, contentType)
	}

	key := fmt.Sprintf("bike-requests/%s%s", uuid.New().String(), ext)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	url, err := uc.store.Save(ctx, key, r, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}

	out := &dto.UploadResponse{URL: url, Key: key}
	if requestID == "" {
		return out, nil
	}

	req, err := uc.requestRepo.GetByID(requestID)
	if err != nil || req == nil || req.BuyerID != callerID {
		uc.log.Warn().Str("request_id", requestID).Msg("imagen subida pero no ligada a la solicitud")
		return out, nil
	}
	if err := uc.requestRepo.AttachURL(requestID, url); err != nil {
		uc.log.Warn().Err(err).Str("request_id", requestID).Msg("imagen subida pero no ligada a la solicitud")
		return out, nil
	}
	out.Attached = true
	return out, nil
}
