package dto

import "time"

// CreateBikeRequestRequest entrada para crear una solicitud (BUYER).
type CreateBikeRequestRequest struct {
	SellerID  string `json:"seller_id" validate:"required,uuid"`
	BikeModel string `json:"bike_model" validate:"required,min=1,max=200"`
	Reason    string `json:"reason" validate:"required,min=1"`
	URL       string `json:"url" validate:"omitempty,url"`
}

// DecideRequestRequest entrada para aprobar/rechazar (SELLER).
type DecideRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
}

// CompanySummary empresa del comprador en las vistas unidas.
type CompanySummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Logo    string `json:"logo,omitempty"`
}

// PartySummary contraparte (comprador o vendedor) en un listado.
type PartySummary struct {
	ID        string          `json:"id,omitempty"`
	Firstname string          `json:"firstname"`
	Lastname  string          `json:"lastname,omitempty"`
	Email     string          `json:"email"`
	Company   *CompanySummary `json:"company,omitempty"`
}

// BikeRequestResponse solicitud serializada.
type BikeRequestResponse struct {
	ID        string    `json:"id"`
	BikeModel string    `json:"bikeModel"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes,omitempty"`
	URL       string    `json:"url,omitempty"`
	Status    string    `json:"status"`
	BuyerID   string    `json:"buyerId"`
	SellerID  string    `json:"sellerId"`
	DecidedBy string    `json:"decidedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BikeRequestViewResponse solicitud con contrapartes unidas.
type BikeRequestViewResponse struct {
	BikeRequestResponse
	Buyer  PartySummary `json:"buyer"`
	Seller PartySummary `json:"seller"`
}

// BikeRequestsPage página de solicitudes (vista buyer o seller).
type BikeRequestsPage struct {
	BikeRequests []BikeRequestViewResponse `json:"bikeRequests"`
	NextCursor   *string                   `json:"nextCursor"`
}

// CreateBikeRequestResult resultado discriminado de la creación.
type CreateBikeRequestResult struct {
	Success     bool                 `json:"success"`
	BikeRequest *BikeRequestResponse `json:"bikeRequest,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// DecideRequestResult resultado discriminado de la decisión.
type DecideRequestResult struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Request *BikeRequestResponse `json:"request,omitempty"`
	Error   string               `json:"error,omitempty"`
}
