// Package policy centraliza las decisiones de autorización (caller, acción, recurso) → permitir/denegar.
// Es el único punto que conoce qué rol puede hacer qué; handlers y casos de uso solo preguntan.
package policy

import "github.com/jhoicas/dropforge-api/internal/domain/entity"

// Action operación protegida.
type Action string

const (
	ActionViewProfile       Action = "profile:view"
	ActionUpdateProfile     Action = "profile:update"
	ActionListUsers         Action = "users:list"
	ActionCreateOrder       Action = "orders:create"
	ActionListOwnOrders     Action = "orders:list_own"
	ActionReadOrder         Action = "orders:read"
	ActionListAllOrders     Action = "orders:list_all"
	ActionUpdateOrderStatus Action = "orders:update_status"
	ActionPrintSlip         Action = "orders:print_slip"
	ActionSyncCatalog       Action = "catalog:sync"
	ActionViewDashboard     Action = "dashboard:view"
)

// Caller identidad autenticada que realiza la petición.
type Caller struct {
	UserID string
	Role   string
}

// IsAdmin indica si el caller es admin o super_admin.
func (c Caller) IsAdmin() bool {
	return c.Role == entity.RoleAdmin || c.Role == entity.RoleSuperAdmin
}

var (
	anyRole      = []string{entity.RoleCustomer, entity.RoleSupplier, entity.RoleAdmin, entity.RoleSuperAdmin}
	adminRoles   = []string{entity.RoleAdmin, entity.RoleSuperAdmin}
	fulfillRoles = []string{entity.RoleSupplier, entity.RoleAdmin, entity.RoleSuperAdmin}
)

// roles por acción. ActionReadOrder además exige propiedad salvo para administradores.
var rules = map[Action][]string{
	ActionViewProfile:       anyRole,
	ActionUpdateProfile:     anyRole,
	ActionListUsers:         adminRoles,
	ActionCreateOrder:       anyRole,
	ActionListOwnOrders:     anyRole,
	ActionReadOrder:         anyRole,
	ActionListAllOrders:     adminRoles,
	ActionUpdateOrderStatus: fulfillRoles,
	ActionPrintSlip:         fulfillRoles,
	ActionSyncCatalog:       adminRoles,
	ActionViewDashboard:     adminRoles,
}

// Allowed evalúa si el caller puede ejecutar la acción sin mirar un recurso concreto.
func Allowed(c Caller, a Action) bool {
	if c.UserID == "" {
		return false
	}
	for _, r := range rules[a] {
		if r == c.Role {
			return true
		}
	}
	return false
}

// CanAccess evalúa la acción sobre un recurso cuyo dueño es ownerID.
// Para lectura de pedidos: admin/super_admin acceden a cualquiera; el resto solo a los propios.
func CanAccess(c Caller, a Action, ownerID string) bool {
	if !Allowed(c, a) {
		return false
	}
	if a != ActionReadOrder || c.IsAdmin() {
		return true
	}
	return ownerID != "" && ownerID == c.UserID
}
