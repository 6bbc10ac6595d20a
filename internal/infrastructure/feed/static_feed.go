// Package feed implementa los clientes del catálogo del proveedor: uno estático embebido y uno HTTP (JSON o XML).
package feed

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dropforge-api/internal/application/supplier"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
)

var _ supplier.FeedClient = (*StaticFeed)(nil)

// StaticFeed catálogo fijo usado cuando no hay SUPPLIER_FEED_URL configurado.
type StaticFeed struct{}

// NewStaticFeed construye el feed estático.
func NewStaticFeed() *StaticFeed { return &StaticFeed{} }

// Fetch devuelve siempre los mismos tres productos.
func (StaticFeed) Fetch(ctx context.Context) ([]supplier.FeedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []supplier.FeedItem{
		{ExternalID: "SUP-001", Title: "Premium Leather Wallet", CostPrice: decimal.NewFromInt(500), StockFlag: entity.StockInStock},
		{ExternalID: "SUP-002", Title: "Wireless Earbuds", CostPrice: decimal.NewFromInt(1200), StockFlag: entity.StockOutOfStock},
		{ExternalID: "SUP-003", Title: "Smart Watch Series 5", CostPrice: decimal.NewFromInt(2500), StockFlag: entity.StockInStock},
	}, nil
}
