package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/application/pagination"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
)

// PageSize tamaño fijo de página para el listado de códigos.
const PageSize = 5

// CodeUseCase emisión, listado y borrado de códigos de invitación.
// El canje vive en el onboarding (auth.RegisterBuyer).
type CodeUseCase struct {
	codeRepo repository.CodeRepository
}

// NewCodeUseCase construye el caso de uso.
func NewCodeUseCase(codeRepo repository.CodeRepository) *CodeUseCase {
	return &CodeUseCase{codeRepo: codeRepo}
}

// Generate produce un código aleatorio de 6 dígitos, reintentando hasta
// encontrar un valor ausente en la tabla, y lo persiste sin usar para
// la empresa del vendedor.
func (uc *CodeUseCase) Generate(companyID string) (*dto.CodeResponse, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	value, err := uc.uniqueValue()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Code{
		ID:        uuid.New().String(),
		Code:      value,
		CompanyID: companyID,
		Used:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.codeRepo.Create(c); err != nil {
		return nil, fmt.Errorf("crear código: %w", err)
	}
	return toCodeResponse(c), nil
}

// List página de códigos de la empresa, más recientes primero.
func (uc *CodeUseCase) List(companyID, cursor string) (*dto.CodesPage, error) {
	codes, err := uc.codeRepo.ListByCompany(companyID, cursor, pagination.Extra(PageSize))
	if err != nil {
		return nil, err
	}
	page, next := pagination.Cut(codes, PageSize, func(c *entity.Code) string { return c.ID })
	out := &dto.CodesPage{
		Codes:      make([]dto.CodeResponse, 0, len(page)),
		NextCursor: next,
	}
	for _, c := range page {
		out.Codes = append(out.Codes, *toCodeResponse(c))
	}
	return out, nil
}

// Delete borra un código de la empresa del vendedor. Borrar un código
// ya borrado devuelve ErrNotFound, sin pánico.
func (uc *CodeUseCase) Delete(companyID, codeID string) (*dto.CodeResponse, error) {
	c, err := uc.codeRepo.GetByID(codeID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.codeRepo.Delete(codeID); err != nil {
		return nil, err
	}
	return toCodeResponse(c), nil
}

// uniqueValue genera valores de 6 dígitos hasta hallar uno libre.
// La probabilidad de colisión por intento es ~1/900000; el reintento
// no está acotado.
func (uc *CodeUseCase) uniqueValue() (string, error) {
	for {
		value, err := randomCode()
		if err != nil {
			return "", err
		}
		existing, err := uc.codeRepo.GetByValue(value)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return value, nil
		}
	}
}

// randomCode devuelve un string numérico en [100000, 999999].
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func toCodeResponse(c *entity.Code) *dto.CodeResponse {
	return &dto.CodeResponse{
		ID:        c.ID,
		Code:      c.Code,
		CompanyID: c.CompanyID,
		Used:      c.Used,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
