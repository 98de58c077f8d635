package repository

import "github.com/jhoicas/BiciFlow-api/internal/domain/entity"

// BikeRequestRepository puerto de persistencia para solicitudes de
// bicicleta. Las solicitudes nunca se borran.
type BikeRequestRepository interface {
	Create(r *entity.BikeRequest) error
	GetByID(id string) (*entity.BikeRequest, error)
	// GetDetail devuelve la solicitud con comprador (incluida su
	// empresa) y vendedor unidos.
	GetDetail(id string) (*entity.BikeRequestView, error)
	// ListByBuyer / ListBySeller paginan por cursor, más recientes
	// primero, con el resumen de la contraparte unido.
	ListByBuyer(buyerID, cursor string, limit int) ([]*entity.BikeRequestView, error)
	ListBySeller(sellerID, cursor string, limit int) ([]*entity.BikeRequestView, error)
	// ListByCompany todas las solicitudes cuyos compradores pertenecen
	// a la empresa (vista agregada del asistente).
	ListByCompany(companyID string) ([]*entity.BikeRequest, error)
	// UpdateDecision persiste status, notes, decided_by y updated_at.
	UpdateDecision(r *entity.BikeRequest) error
	// AttachURL guarda la URL de la imagen subida.
	AttachURL(id, url string) error
}
