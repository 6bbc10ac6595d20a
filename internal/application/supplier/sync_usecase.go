package supplier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dropforge-api/internal/application/dto"
	"github.com/jhoicas/dropforge-api/internal/domain"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/pricing"
	"github.com/jhoicas/dropforge-api/internal/domain/repository"
	"github.com/jhoicas/dropforge-api/pkg/logger"
)

// SyncUseCase sincroniza el catálogo local con el feed del proveedor.
// Inserta los productos nuevos, sobrescribe los existentes y nunca borra los ausentes del feed.
type SyncUseCase struct {
	feed        FeedClient
	productRepo repository.ProductRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewSyncUseCase construye el caso de uso.
func NewSyncUseCase(feed FeedClient, productRepo repository.ProductRepository, log *logger.Logger) *SyncUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SyncUseCase{feed: feed, productRepo: productRepo, log: log.Component("supplier_sync"), now: time.Now}
}

// Sync ejecuta una pasada completa. Si el feed falla se registra y se devuelven contadores en cero sin error.
// Un error del almacenamiento aborta la pasada; lo ya escrito queda escrito.
func (uc *SyncUseCase) Sync(ctx context.Context) (dto.SyncStats, error) {
	var stats dto.SyncStats
	started := uc.now()
	uc.log.Info().Msg("sincronización con proveedor iniciada")

	items, err := uc.feed.Fetch(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("feed del proveedor no disponible, no se sincroniza nada")
		return stats, nil
	}

	for _, item := range items {
		if !entity.IsValidStockStatus(item.StockFlag) || strings.TrimSpace(item.ExternalID) == "" || item.CostPrice.IsNegative() {
			uc.log.Warn().Str("external_id", item.ExternalID).Msg("descriptor de proveedor inválido, se omite")
			continue
		}
		added, err := uc.upsert(ctx, item)
		if err != nil {
			return stats, fmt.Errorf("sync %s: %w", item.ExternalID, err)
		}
		if added {
			stats.Added++
		} else {
			stats.Updated++
		}
	}
	stats.Total = stats.Added + stats.Updated

	uc.log.Info().
		Int("added", stats.Added).
		Int("updated", stats.Updated).
		Int("total", stats.Total).
		Dur("elapsed", uc.now().Sub(started)).
		Msg("sincronización con proveedor finalizada")
	return stats, nil
}

// upsert devuelve true si insertó. Si otra sincronización ganó la carrera del insert, se relee y actualiza.
func (uc *SyncUseCase) upsert(ctx context.Context, item FeedItem) (bool, error) {
	existing, err := uc.productRepo.GetBySupplierProductID(ctx, item.ExternalID)
	if err != nil {
		return false, err
	}
	now := uc.now()
	if existing == nil {
		product := &entity.Product{
			ID:                uuid.New().String(),
			SupplierProductID: item.ExternalID,
			CreatedAt:         now,
		}
		apply(product, item, now)
		err := uc.productRepo.Create(ctx, product)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return false, err
		}
		uc.log.Debug().Str("external_id", item.ExternalID).Msg("insert concurrente detectado, se actualiza")
		existing, err = uc.productRepo.GetBySupplierProductID(ctx, item.ExternalID)
		if err != nil {
			return false, err
		}
		if existing == nil {
			return false, fmt.Errorf("producto %s desapareció tras conflicto de unicidad", item.ExternalID)
		}
	}
	apply(existing, item, now)
	return false, uc.productRepo.Update(ctx, existing)
}

func apply(p *entity.Product, item FeedItem, now time.Time) {
	p.Title = strings.TrimSpace(item.Title)
	cost := pricing.RoundCost(item.CostPrice)
	p.CostPrice = cost
	p.SellingPrice = pricing.SellingPrice(cost)
	p.StockStatus = item.StockFlag
	p.UpdatedAt = now
}
