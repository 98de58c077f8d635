package request

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/application/pagination"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
)

// Tamaños de página fijos por endpoint (contrato de paginación).
const (
	BuyerPageSize  = 4
	SellerPageSize = 5
)

// RequestUseCase ciclo de vida de las solicitudes de bicicleta:
// creación por el comprador, listados por cursor y decisión del
// vendedor (PENDING -> APPROVED | REJECTED, ambos terminales).
type RequestUseCase struct {
	requestRepo repository.BikeRequestRepository
	userRepo    repository.UserRepository
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(requestRepo repository.BikeRequestRepository, userRepo repository.UserRepository) *RequestUseCase {
	return &RequestUseCase{requestRepo: requestRepo, userRepo: userRepo}
}

// Create crea una solicitud PENDING del comprador hacia el vendedor
// indicado. El destinatario debe existir y tener rol SELLER; no se
// exige que comparta empresa con el comprador (la pertenencia se
// verifica al decidir, no al crear).
func (uc *RequestUseCase) Create(buyerID string, in dto.CreateBikeRequestRequest) (*dto.BikeRequestResponse, error) {
	if in.SellerID == "" || in.BikeModel == "" || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	seller, err := uc.userRepo.GetByID(in.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}
	if seller.Role != entity.RoleSeller {
		return nil, domain.ErrInvalidRole
	}

	now := time.Now()
	r := &entity.BikeRequest{
		ID:        uuid.New().String(),
		BikeModel: in.BikeModel,
		Reason:    in.Reason,
		URL:       in.URL,
		Status:    entity.StatusPending,
		BuyerID:   buyerID,
		SellerID:  in.SellerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.requestRepo.Create(r); err != nil {
		return nil, fmt.Errorf("crear solicitud: %w", err)
	}
	return toRequestResponse(r), nil
}

// ListForBuyer página de solicitudes del comprador, más recientes primero.
func (uc *RequestUseCase) ListForBuyer(buyerID, cursor string) (*dto.BikeRequestsPage, error) {
	views, err := uc.requestRepo.ListByBuyer(buyerID, cursor, pagination.Extra(BuyerPageSize))
	if err != nil {
		return nil, err
	}
	return toRequestsPage(views, BuyerPageSize), nil
}

// ListForSeller página de solicitudes dirigidas al vendedor.
func (uc *RequestUseCase) ListForSeller(sellerID, cursor string) (*dto.BikeRequestsPage, error) {
	views, err := uc.requestRepo.ListBySeller(sellerID, cursor, pagination.Extra(SellerPageSize))
	if err != nil {
		return nil, err
	}
	return toRequestsPage(views, SellerPageSize), nil
}

// Get detalle de una solicitud con comprador (y su empresa) y vendedor.
func (uc *RequestUseCase) Get(id string) (*dto.BikeRequestViewResponse, error) {
	view, err := uc.requestRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	out := toViewResponse(view)
	return &out, nil
}

// Decide aprueba o rechaza una solicitud PENDING. Cualquier SELLER de
// la empresa del comprador puede decidir; la decisión queda auditada en
// decided_by sin reasignar al destinatario original. Una solicitud ya
// decidida no admite una segunda decisión.
func (uc *RequestUseCase) Decide(callerID, callerCompanyID, requestID string, in dto.DecideRequestRequest) (*dto.BikeRequestResponse, error) {
	if in.Status != entity.StatusApproved && in.Status != entity.StatusRejected {
		return nil, domain.ErrInvalidInput
	}
	view, err := uc.requestRepo.GetDetail(requestID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	if view.Buyer.CompanyID != callerCompanyID {
		return nil, domain.ErrUnauthorized
	}
	if view.Decided() {
		return nil, domain.ErrConflict
	}

	r := view.BikeRequest
	r.Status = in.Status
	r.Notes = in.Notes
	r.DecidedByID = callerID
	r.UpdatedAt = time.Now()
	if err := uc.requestRepo.UpdateDecision(&r); err != nil {
		return nil, fmt.Errorf("actualizar solicitud: %w", err)
	}
	return toRequestResponse(&r), nil
}

func toRequestResponse(r *entity.BikeRequest) *dto.BikeRequestResponse {
	return &dto.BikeRequestResponse{
		ID:        r.ID,
		BikeModel: r.BikeModel,
		Reason:    r.Reason,
		Notes:     r.Notes,
		URL:       r.URL,
		Status:    r.Status,
		BuyerID:   r.BuyerID,
		SellerID:  r.SellerID,
		DecidedBy: r.DecidedByID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toViewResponse(v *entity.BikeRequestView) dto.BikeRequestViewResponse {
	out := dto.BikeRequestViewResponse{
		BikeRequestResponse: *toRequestResponse(&v.BikeRequest),
		Buyer: dto.PartySummary{
			ID:        v.Buyer.ID,
			Firstname: v.Buyer.Firstname,
			Lastname:  v.Buyer.Lastname,
			Email:     v.Buyer.Email,
		},
		Seller: dto.PartySummary{
			Firstname: v.Seller.Firstname,
			Lastname:  v.Seller.Lastname,
			Email:     v.Seller.Email,
		},
	}
	if v.BuyerCompany != nil {
		out.Buyer.Company = &dto.CompanySummary{
			ID:      v.BuyerCompany.ID,
			Name:    v.BuyerCompany.Name,
			Website: v.BuyerCompany.Website,
			Logo:    v.BuyerCompany.Logo,
		}
	}
	return out
}

func toRequestsPage(views []*entity.BikeRequestView, pageSize int) *dto.BikeRequestsPage {
	page, next := pagination.Cut(views, pageSize, func(v *entity.BikeRequestView) string { return v.ID })
	out := &dto.BikeRequestsPage{
		BikeRequests: make([]dto.BikeRequestViewResponse, 0, len(page)),
		NextCursor:   next,
	}
	for _, v := range page {
		out.BikeRequests = append(out.BikeRequests, toViewResponse(v))
	}
	return out
}
