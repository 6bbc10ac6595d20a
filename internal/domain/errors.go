package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso añaden detalle con fmt.Errorf("%w: ...") y los handlers comparan con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrOrderNotFound      = errors.New("pedido no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrDuplicatePhone     = errors.New("el teléfono ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrEmptyOrder         = errors.New("el pedido no tiene productos")
	ErrOutOfStock         = errors.New("producto sin stock")
)
