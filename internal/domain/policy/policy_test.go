package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/policy"
)

func TestAllowed_PorRol(t *testing.T) {
	customer := policy.Caller{UserID: "u1", Role: entity.RoleCustomer}
	supplier := policy.Caller{UserID: "u2", Role: entity.RoleSupplier}
	admin := policy.Caller{UserID: "u3", Role: entity.RoleAdmin}
	super := policy.Caller{UserID: "u4", Role: entity.RoleSuperAdmin}

	assert.True(t, policy.Allowed(customer, policy.ActionCreateOrder))
	assert.False(t, policy.Allowed(customer, policy.ActionListUsers))
	assert.False(t, policy.Allowed(customer, policy.ActionUpdateOrderStatus))
	assert.False(t, policy.Allowed(customer, policy.ActionSyncCatalog))

	assert.True(t, policy.Allowed(supplier, policy.ActionUpdateOrderStatus))
	assert.False(t, policy.Allowed(supplier, policy.ActionListAllOrders))

	for _, a := range []policy.Action{policy.ActionListUsers, policy.ActionListAllOrders, policy.ActionSyncCatalog, policy.ActionViewDashboard} {
		assert.True(t, policy.Allowed(admin, a), string(a))
		assert.True(t, policy.Allowed(super, a), string(a))
	}
}

func TestAllowed_SinUsuarioORolDesconocido(t *testing.T) {
	assert.False(t, policy.Allowed(policy.Caller{Role: entity.RoleAdmin}, policy.ActionListUsers))
	assert.False(t, policy.Allowed(policy.Caller{UserID: "u", Role: "root"}, policy.ActionViewProfile))
}

func TestCanAccess_LecturaDePedido(t *testing.T) {
	owner := policy.Caller{UserID: "owner", Role: entity.RoleCustomer}
	other := policy.Caller{UserID: "other", Role: entity.RoleCustomer}
	supplier := policy.Caller{UserID: "sup", Role: entity.RoleSupplier}
	admin := policy.Caller{UserID: "adm", Role: entity.RoleAdmin}

	assert.True(t, policy.CanAccess(owner, policy.ActionReadOrder, "owner"))
	assert.False(t, policy.CanAccess(other, policy.ActionReadOrder, "owner"))
	assert.False(t, policy.CanAccess(supplier, policy.ActionReadOrder, "owner"))
	assert.True(t, policy.CanAccess(admin, policy.ActionReadOrder, "owner"))
	assert.False(t, policy.CanAccess(other, policy.ActionReadOrder, ""), "un pedido sin dueño solo lo ven administradores")
}
