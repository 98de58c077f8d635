package repository

import "github.com/jhoicas/BiciFlow-api/internal/domain/entity"

// CodeRepository puerto de persistencia para códigos de invitación.
type CodeRepository interface {
	Create(code *entity.Code) error
	GetByID(id string) (*entity.Code, error)
	// GetByValue busca por el string de 6 dígitos, usado o no (para el
	// chequeo de unicidad al generar).
	GetByValue(value string) (*entity.Code, error)
	// FindUnused busca un código sin usar con ese valor. (nil, nil) si
	// no existe o ya fue consumido.
	FindUnused(value string) (*entity.Code, error)
	// MarkUsed marca el código como usado solo si sigue sin usar
	// (compare-and-set en una sola sentencia). Devuelve false si otro
	// canje lo ganó.
	MarkUsed(id string) (bool, error)
	// ListByCompany pagina por cursor, más recientes primero.
	ListByCompany(companyID, cursor string, limit int) ([]*entity.Code, error)
	// ListAllByCompany lista completa para la vista agregada del asistente.
	ListAllByCompany(companyID string) ([]*entity.Code, error)
	// Delete borra por id; domain.ErrNotFound si no existe.
	Delete(id string) error
}
