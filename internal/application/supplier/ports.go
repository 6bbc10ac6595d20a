package supplier

import (
	"context"

	"github.com/shopspring/decimal"
)

// FeedItem descriptor de producto tal como lo publica el proveedor.
type FeedItem struct {
	ExternalID string
	Title      string
	CostPrice  decimal.Decimal
	StockFlag  string // in_stock | out_of_stock | discontinued
}

// FeedClient obtiene el catálogo del proveedor. Un error se trata como feed vacío.
type FeedClient interface {
	Fetch(ctx context.Context) ([]FeedItem, error)
}
