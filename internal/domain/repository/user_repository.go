package repository

import "github.com/jhoicas/BiciFlow-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe; el caso
// de uso decide si eso es un error.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// ListByCompany devuelve todos los usuarios de la empresa (roster
	// acotado; lo consume la vista agregada del asistente).
	ListByCompany(companyID string) ([]*entity.User, error)
	// ListBuyersByCompany pagina por cursor los BUYER de la empresa,
	// ordenados por apellido ascendente. Trae limit filas empezando en
	// el cursor (inclusive) si está presente.
	ListBuyersByCompany(companyID, cursor string, limit int) ([]*entity.User, error)
}
