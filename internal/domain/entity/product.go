package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock que reporta el proveedor.
const (
	StockInStock      = "in_stock"
	StockOutOfStock   = "out_of_stock"
	StockDiscontinued = "discontinued"
)

// Product es un producto del catálogo sincronizado desde el feed del proveedor.
// Solo la sincronización lo crea o modifica; SupplierProductID es la clave natural (única).
type Product struct {
	ID                string
	SupplierProductID string
	Title             string
	CostPrice         decimal.Decimal
	SellingPrice      decimal.Decimal // derivado de CostPrice con el markup fijo
	StockStatus       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValidStockStatus informa si s es un estado de stock conocido.
func IsValidStockStatus(s string) bool {
	switch s {
	case StockInStock, StockOutOfStock, StockDiscontinued:
		return true
	}
	return false
}

// Available indica si el producto se puede vender.
func (p *Product) Available() bool {
	return p.StockStatus == StockInStock
}
