package repository

import (
	"context"

	"github.com/jhoicas/dropforge-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
// Devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	// Create inserta un producto; domain.ErrDuplicate si supplier_product_id ya existe.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySupplierProductID(ctx context.Context, supplierProductID string) (*entity.Product, error)
	// Update sobrescribe título, costo, precio de venta y estado de stock.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
}
