package domain

import "github.com/jhoicas/BiciFlow-api/internal/domain/entity"

// Capability acciones autorizables del sistema. En lugar de comparar
// roles sueltos en cada handler, la política se declara una sola vez
// aquí como un conjunto cerrado.
type Capability string

const (
	CanCreateRequest Capability = "create_request"
	CanDecideRequest Capability = "decide_request"
	CanManageCodes   Capability = "manage_codes"
	CanListCustomers Capability = "list_customers"
	CanUseAssistant  Capability = "use_assistant"
	CanManageBilling Capability = "manage_billing"
)

// capabilities tabla de política: rol -> acciones permitidas.
var capabilities = map[string]map[Capability]bool{
	entity.RoleBuyer: {
		CanCreateRequest: true,
	},
	entity.RoleSeller: {
		CanDecideRequest: true,
		CanManageCodes:   true,
		CanListCustomers: true,
		CanUseAssistant:  true,
		CanManageBilling: true,
	},
}

// RoleCan indica si un rol tiene la capacidad dada. Roles desconocidos
// no tienen ninguna.
func RoleCan(role string, cap Capability) bool {
	return capabilities[role][cap]
}
