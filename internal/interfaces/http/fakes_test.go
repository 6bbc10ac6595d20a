package http_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dropforge-api/internal/domain"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/repository"
)

// Almacenes en memoria con las mismas garantías de unicidad que el esquema SQL.

type memUsers struct {
	mu    sync.Mutex
	items map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.items {
		if o.Phone == u.Phone {
			return domain.ErrDuplicatePhone
		}
	}
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.items[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *memUsers) List(context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.items))
	for _, u := range m.items {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUsers) DeleteByPhone(_ context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.items {
		if u.Phone == phone {
			delete(m.items, id)
		}
	}
	return nil
}

type memProducts struct {
	mu    sync.Mutex
	items map[string]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.items {
		if o.SupplierProductID == p.SupplierProductID {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memProducts) GetBySupplierProductID(_ context.Context, sid string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.SupplierProductID == sid {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) List(context.Context) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Product, 0, len(m.items))
	for _, p := range m.items {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memProducts) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items), nil
}

type memOrders struct {
	mu      sync.Mutex
	items   map[string]*entity.Order
	failAll error // si no es nil, toda operación falla con este error
}

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	for _, e := range m.items {
		if e.LocalOrderID == o.LocalOrderID {
			return domain.ErrDuplicate
		}
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	m.items[o.ID] = &cp
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	if o, ok := m.items[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (m *memOrders) filter(keep func(*entity.Order) bool) []*entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Order
	for _, o := range m.items {
		if keep(o) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out
}

func (m *memOrders) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	return m.filter(func(o *entity.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrders) ListAll(context.Context) ([]*entity.Order, error) {
	return m.filter(func(*entity.Order) bool { return true }), nil
}

func (m *memOrders) UpdateStatus(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	cp := *o
	m.items[o.ID] = &cp
	return nil
}

func (m *memOrders) Summary(context.Context) (*entity.OrderSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	s := &entity.OrderSummary{ByStatus: map[string]int{}, TotalSales: decimal.Zero, NetProfit: decimal.Zero}
	for _, o := range m.items {
		s.TotalOrders++
		s.TotalSales = s.TotalSales.Add(o.Total())
		s.NetProfit = s.NetProfit.Add(o.Profit)
		s.ByStatus[o.Status]++
	}
	return s, nil
}

type memTx struct{ orders *memOrders }

func (t memTx) RunOrder(_ context.Context, fn func(repository.OrderRepository) error) error {
	return fn(t.orders)
}

var errStoreDown = errors.New("pq: connection refused")
