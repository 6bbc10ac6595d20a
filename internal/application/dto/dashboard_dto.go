package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary (tarjetas del panel).
type DashboardSummaryDTO struct {
	TotalSales     decimal.Decimal `json:"totalSales"` // Σ precio congelado × cantidad
	TotalOrders    int             `json:"totalOrders"`
	Products       int             `json:"products"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	OrdersByStatus map[string]int  `json:"ordersByStatus"`
}
