package supplier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dropforge-api/internal/domain"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
)

type stubFeed struct {
	items []FeedItem
	err   error
}

func (f *stubFeed) Fetch(context.Context) ([]FeedItem, error) { return f.items, f.err }

// memCatalog fake en memoria con índice único por supplier_product_id.
type memCatalog struct {
	mu        sync.Mutex
	byID      map[string]*entity.Product
	createErr error
	// raceOnCreate simula que otra sincronización insertó el mismo producto justo antes.
	raceOnCreate bool
	creates      int
	updates      int
}

func newMemCatalog() *memCatalog { return &memCatalog{byID: map[string]*entity.Product{}} }

func (m *memCatalog) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	if m.raceOnCreate {
		m.raceOnCreate = false
		winner := *p
		winner.ID = "winner-" + p.SupplierProductID
		winner.Title = "versión del otro proceso"
		m.byID[winner.ID] = &winner
		return domain.ErrDuplicate
	}
	for _, other := range m.byID {
		if other.SupplierProductID == p.SupplierProductID {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memCatalog) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memCatalog) GetBySupplierProductID(_ context.Context, sid string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.SupplierProductID == sid {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCatalog) Update(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memCatalog) List(context.Context) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Product, 0, len(m.byID))
	for _, p := range m.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCatalog) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

func feedItems() []FeedItem {
	return []FeedItem{
		{ExternalID: "SUP-001", Title: "Premium Leather Wallet", CostPrice: decimal.NewFromInt(500), StockFlag: entity.StockInStock},
		{ExternalID: "SUP-002", Title: "Wireless Earbuds", CostPrice: decimal.NewFromInt(1200), StockFlag: entity.StockOutOfStock},
		{ExternalID: "SUP-003", Title: "Smart Watch Series 5", CostPrice: decimal.RequireFromString("2499.99"), StockFlag: entity.StockInStock},
	}
}

func TestSync_InsertaYCalculaPrecioDeVenta(t *testing.T) {
	catalog := newMemCatalog()
	uc := NewSyncUseCase(&stubFeed{items: feedItems()}, catalog, nil)

	stats, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Added)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 3, stats.Total)

	p, err := catalog.GetBySupplierProductID(context.Background(), "SUP-001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(750)))

	p, _ = catalog.GetBySupplierProductID(context.Background(), "SUP-003")
	assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(3750)), "ceil(2499.99 × 1.5) = ceil(3749.985)")
}

func TestSync_SegundaPasadaEsIdempotente(t *testing.T) {
	catalog := newMemCatalog()
	uc := NewSyncUseCase(&stubFeed{items: feedItems()}, catalog, nil)
	ctx := context.Background()

	_, err := uc.Sync(ctx)
	require.NoError(t, err)
	before, _ := catalog.GetBySupplierProductID(ctx, "SUP-002")

	stats, err := uc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 3, stats.Updated)
	assert.Equal(t, stats.Added+stats.Updated, stats.Total)

	after, _ := catalog.GetBySupplierProductID(ctx, "SUP-002")
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Title, after.Title)
	assert.True(t, before.CostPrice.Equal(after.CostPrice))
	assert.True(t, before.SellingPrice.Equal(after.SellingPrice))
	assert.Equal(t, before.StockStatus, after.StockStatus)
	n, _ := catalog.Count(ctx)
	assert.Equal(t, 3, n)
}

func TestSync_ActualizaEnSitioYNoBorraAusentes(t *testing.T) {
	catalog := newMemCatalog()
	feed := &stubFeed{items: feedItems()}
	uc := NewSyncUseCase(feed, catalog, nil)
	ctx := context.Background()
	_, err := uc.Sync(ctx)
	require.NoError(t, err)

	feed.items = []FeedItem{
		{ExternalID: "SUP-001", Title: "Premium Leather Wallet v2", CostPrice: decimal.NewFromInt(600), StockFlag: entity.StockDiscontinued},
		{ExternalID: "SUP-004", Title: "USB-C Cable", CostPrice: decimal.NewFromInt(99), StockFlag: entity.StockInStock},
	}
	stats, err := uc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 2, stats.Total)

	p, _ := catalog.GetBySupplierProductID(ctx, "SUP-001")
	assert.Equal(t, "Premium Leather Wallet v2", p.Title)
	assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, entity.StockDiscontinued, p.StockStatus)

	p, _ = catalog.GetBySupplierProductID(ctx, "SUP-004")
	assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(149)), "ceil(148.5)")

	n, _ := catalog.Count(ctx)
	assert.Equal(t, 4, n, "SUP-002 y SUP-003 siguen en el catálogo")
}

func TestSync_FalloDelFeed_ContadoresEnCeroSinError(t *testing.T) {
	catalog := newMemCatalog()
	uc := NewSyncUseCase(&stubFeed{err: errors.New("connection refused")}, catalog, nil)

	stats, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Added)
	assert.Zero(t, stats.Updated)
	assert.Zero(t, stats.Total)
	assert.Zero(t, catalog.creates)
}

func TestSync_FeedVacio(t *testing.T) {
	uc := NewSyncUseCase(&stubFeed{}, newMemCatalog(), nil)
	stats, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestSync_CarreraDeInsert_SeCuentaComoActualizado(t *testing.T) {
	catalog := newMemCatalog()
	catalog.raceOnCreate = true
	uc := NewSyncUseCase(&stubFeed{items: feedItems()[:1]}, catalog, nil)

	stats, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Updated)

	n, _ := catalog.Count(context.Background())
	assert.Equal(t, 1, n, "no se duplica el producto")
	p, _ := catalog.GetBySupplierProductID(context.Background(), "SUP-001")
	assert.Equal(t, "winner-SUP-001", p.ID)
	assert.Equal(t, "Premium Leather Wallet", p.Title)
}

func TestSync_ErrorDeAlmacenamiento_FallaLaPasada(t *testing.T) {
	catalog := newMemCatalog()
	catalog.createErr = errors.New("db caída")
	uc := NewSyncUseCase(&stubFeed{items: feedItems()}, catalog, nil)

	_, err := uc.Sync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUP-001")
}

func TestSync_OmiteDescriptoresInvalidos(t *testing.T) {
	catalog := newMemCatalog()
	items := append(feedItems(),
		FeedItem{ExternalID: "SUP-X", Title: "Raro", CostPrice: decimal.NewFromInt(10), StockFlag: "maybe"},
		FeedItem{ExternalID: "SUP-Y", Title: "Negativo", CostPrice: decimal.NewFromInt(-1), StockFlag: entity.StockInStock},
	)
	uc := NewSyncUseCase(&stubFeed{items: items}, catalog, nil)

	stats, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
}

func TestSync_CostoConMasDeDosDecimales_PrecioDerivadoDelCostoAlmacenado(t *testing.T) {
	catalog := newMemCatalog()
	feed := &stubFeed{items: []FeedItem{
		{ExternalID: "SUP-050", Title: "Mouse Pad", CostPrice: decimal.RequireFromString("100.004"), StockFlag: entity.StockInStock},
	}}
	uc := NewSyncUseCase(feed, catalog, nil)

	_, err := uc.Sync(context.Background())
	require.NoError(t, err)

	p, err := catalog.GetBySupplierProductID(context.Background(), "SUP-050")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("100")), p.CostPrice.String())
	assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(150)), "ceil(100.00 × 1.5), no ceil(100.004 × 1.5) = 151")
}
