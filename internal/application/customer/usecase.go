package customer

import (
	"github.com/jhoicas/BiciFlow-api/internal/application/auth"
	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/application/pagination"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
)

// PageSize tamaño fijo de página del roster de clientes.
const PageSize = 3

// CustomerUseCase roster de compradores de la empresa del vendedor,
// ordenado por apellido ascendente.
type CustomerUseCase struct {
	userRepo repository.UserRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(userRepo repository.UserRepository) *CustomerUseCase {
	return &CustomerUseCase{userRepo: userRepo}
}

// List página del roster de BUYER de la empresa.
func (uc *CustomerUseCase) List(companyID, cursor string) (*dto.UsersPage, error) {
	users, err := uc.userRepo.ListBuyersByCompany(companyID, cursor, pagination.Extra(PageSize))
	if err != nil {
		return nil, err
	}
	page, next := pagination.Cut(users, PageSize, func(u *entity.User) string { return u.ID })
	out := &dto.UsersPage{
		Users:      make([]dto.UserResponse, 0, len(page)),
		NextCursor: next,
	}
	for _, u := range page {
		out.Users = append(out.Users, *auth.ToUserResponse(u))
	}
	return out, nil
}
