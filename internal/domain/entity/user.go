package entity

import "time"

// Roles válidos para User. El rol es inmutable después de la creación:
// no existe flujo de cambio de rol.
const (
	RoleSeller = "SELLER"
	RoleBuyer  = "BUYER"
)

// User representa un usuario del sistema (pertenece a una Company).
// Los SELLER administran la empresa; los BUYER son empleados que
// solicitan bicicletas.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Firstname    string
	Lastname     string
	Image        string // URL del avatar, opcional
	Role         string // SELLER | BUYER
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para mostrar (firstname + lastname si existe).
func (u *User) FullName() string {
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}

// UserSummary proyección mínima de un usuario para vistas con join
// (listados de solicitudes).
type UserSummary struct {
	ID        string
	Firstname string
	Lastname  string
	Email     string
	CompanyID string
}
