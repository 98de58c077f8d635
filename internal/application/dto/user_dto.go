package dto

import "time"

// RegisterSellerRequest onboarding de un vendedor: crea la empresa, el
// usuario SELLER y su suscripción FREE.
type RegisterSellerRequest struct {
	CompanyName    string `json:"company_name" validate:"required,min=1,max=200"`
	CompanyWebsite string `json:"company_website" validate:"omitempty,url"`
	CompanyLogo    string `json:"company_logo" validate:"omitempty,url"`
	Firstname      string `json:"firstname" validate:"required,min=1,max=100"`
	Lastname       string `json:"lastname" validate:"omitempty,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
}

// RegisterBuyerRequest onboarding de un comprador: canjea el código de
// invitación y lo liga a la empresa del código.
type RegisterBuyerRequest struct {
	InvitationCode string `json:"invitation_code" validate:"required,len=6"`
	Firstname      string `json:"firstname" validate:"required,min=1,max=100"`
	Lastname       string `json:"lastname" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname,omitempty"`
	Image     string    `json:"image,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UsersPage página del roster de clientes (compradores de la empresa).
// Los nombres JSON siguen el contrato de los listados: nextCursor null
// señala fin de lista.
type UsersPage struct {
	Users      []UserResponse `json:"users"`
	NextCursor *string        `json:"nextCursor"`
}
