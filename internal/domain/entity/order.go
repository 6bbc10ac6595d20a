package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. No hay tabla de transiciones: cualquier estado válido sobrescribe al actual.
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusSentToSupplier = "sent_to_supplier"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusReturned       = "returned"
	OrderStatusCancelled      = "cancelled"
)

// OrderStatuses lista los estados en el orden del ciclo de vida habitual.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusSentToSupplier,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusReturned,
	OrderStatusCancelled,
}

// IsValidOrderStatus informa si s es un estado de pedido conocido.
func IsValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// CustomerInfo copia desnormalizada de los datos de envío; no cambia si el usuario edita su perfil.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// Order representa un pedido. LocalOrderID es el identificador legible (único, inmutable).
type Order struct {
	ID              string
	LocalOrderID    string
	SupplierOrderID *string
	UserID          string
	CustomerInfo    CustomerInfo
	PaymentMethod   string
	Items           []OrderItem
	Status          string
	CourierStatus   *string
	Profit          decimal.Decimal // calculado una sola vez al crear
	ReturnReason    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea del pedido con el precio congelado al momento de la compra.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	ProductTitle    string // solo lectura; se completa al consultar
	Quantity        int
	PriceAtPurchase decimal.Decimal
	Position        int
}

// Subtotal devuelve PriceAtPurchase × Quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total suma los subtotales de las líneas.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// OrderSummary agregados de pedidos para el panel de administración.
type OrderSummary struct {
	TotalOrders int
	TotalSales  decimal.Decimal // Σ PriceAtPurchase × Quantity
	NetProfit   decimal.Decimal
	ByStatus    map[string]int
}
