package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/dropforge-api/internal/application/dto"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/repository"
)

// DashboardUseCase arma las tarjetas del panel: ventas, pedidos, productos y ganancia neta.
type DashboardUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{orderRepo: orderRepo, productRepo: productRepo}
}

// GetSummary ejecuta en paralelo el agregado de pedidos y el conteo de productos.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type summaryResult struct {
		summary *entity.OrderSummary
		err     error
	}
	type countResult struct {
		n   int
		err error
	}
	summaryCh := make(chan summaryResult, 1)
	countCh := make(chan countResult, 1)

	go func() {
		s, err := uc.orderRepo.Summary(ctx)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		n, err := uc.productRepo.Count(ctx)
		countCh <- countResult{n, err}
	}()

	sr := <-summaryCh
	cr := <-countCh
	if sr.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de pedidos: %w", sr.err)
	}
	if cr.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", cr.err)
	}

	byStatus := make(map[string]int, len(entity.OrderStatuses))
	for _, st := range entity.OrderStatuses {
		byStatus[st] = sr.summary.ByStatus[st]
	}
	return &dto.DashboardSummaryDTO{
		TotalSales:     sr.summary.TotalSales,
		TotalOrders:    sr.summary.TotalOrders,
		Products:       cr.n,
		NetProfit:      sr.summary.NetProfit,
		OrdersByStatus: byStatus,
	}, nil
}
