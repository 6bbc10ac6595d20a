package entity

import "time"

// Roles válidos para User.
const (
	RoleCustomer   = "customer"
	RoleSupplier   = "supplier"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// User representa una cuenta del back-office. Phone es la clave natural (única).
type User struct {
	ID           string
	Name         string
	Phone        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole informa si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleSupplier, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
