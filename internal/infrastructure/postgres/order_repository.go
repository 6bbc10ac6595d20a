package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dropforge-api/internal/domain"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `
	id, local_order_id, supplier_order_id, user_id,
	customer_name, customer_phone, customer_address, customer_city,
	payment_method, status, courier_status, profit, return_reason,
	created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera y las líneas. Usar dentro de TxRunner.RunOrder.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.LocalOrderID, nullIfEmpty(order.SupplierOrderID), order.UserID,
		order.CustomerInfo.Name, order.CustomerInfo.Phone, order.CustomerInfo.Address, order.CustomerInfo.City,
		order.PaymentMethod, order.Status, nullIfEmpty(order.CourierStatus), order.Profit, nullIfEmpty(order.ReturnReason),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s (%s)", domain.ErrDuplicate, order.LocalOrderID, violatedConstraint(err))
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range order.Items {
		it := &order.Items[i]
		it.OrderID = order.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.PriceAtPurchase, it.Position,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas (título del producto incluido).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByUser lista los pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListAll lista todos los pedidos, más recientes primero.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachItems carga las líneas de todos los pedidos en una sola consulta.
func (r *OrderRepo) attachItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, COALESCE(p.title, ''), i.quantity, i.price_at_purchase, i.position
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.order_id, i.position`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductTitle, &it.Quantity, &it.PriceAtPurchase, &it.Position); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[it.OrderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// UpdateStatus persiste los campos mutables del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET status            = $2,
		    courier_status    = COALESCE($3, courier_status),
		    supplier_order_id = COALESCE($4, supplier_order_id),
		    return_reason     = COALESCE($5, return_reason),
		    updated_at        = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		order.ID, order.Status,
		nullIfEmpty(order.CourierStatus), nullIfEmpty(order.SupplierOrderID), nullIfEmpty(order.ReturnReason),
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Summary agrega cantidad, ventas, ganancia y pedidos por estado.
func (r *OrderRepo) Summary(ctx context.Context) (*entity.OrderSummary, error) {
	s := &entity.OrderSummary{ByStatus: map[string]int{}}
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(price_at_purchase * quantity), 0) FROM order_items),
			(SELECT COALESCE(SUM(profit), 0) FROM orders)`,
	).Scan(&s.TotalOrders, &s.TotalSales, &s.NetProfit)
	if err != nil {
		return nil, fmt.Errorf("order summary: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan orders by status: %w", err)
		}
		s.ByStatus[status] = n
	}
	return s, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.LocalOrderID, &o.SupplierOrderID, &o.UserID,
		&o.CustomerInfo.Name, &o.CustomerInfo.Phone, &o.CustomerInfo.Address, &o.CustomerInfo.City,
		&o.PaymentMethod, &o.Status, &o.CourierStatus, &o.Profit, &o.ReturnReason,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
