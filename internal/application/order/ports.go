package order

import (
	"context"

	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción, pasando un repositorio de pedidos atado a esa tx.
// Cabecera y líneas se escriben juntas o no se escriben.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// SlipGenerator genera el PDF del remito de despacho de un pedido.
type SlipGenerator interface {
	GenerateSlip(order *entity.Order) ([]byte, error)
}
