package repository

import (
	"context"

	"github.com/jhoicas/dropforge-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Devuelve (nil, nil) cuando el pedido no existe.
type OrderRepository interface {
	// Create persiste cabecera y líneas; domain.ErrDuplicate si local_order_id ya existe.
	// Debe ejecutarse dentro de una transacción para que el pedido quede completo o no quede.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	// UpdateStatus persiste status, courier_status, supplier_order_id y return_reason.
	UpdateStatus(ctx context.Context, order *entity.Order) error
	Summary(ctx context.Context) (*entity.OrderSummary, error)
}
