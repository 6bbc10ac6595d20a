package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada: ID del producto y cantidad.
type OrderItemRequest struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
}

// ShippingAddress datos de envío; se copian tal cual al pedido.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// CreateOrderRequest entrada de POST /api/orders.
type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest `json:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// UpdateOrderStatusRequest actualización parcial: null/ausente significa "sin cambio".
type UpdateOrderStatusRequest struct {
	Status          *string `json:"status"`
	CourierStatus   *string `json:"courierStatus"`
	SupplierOrderID *string `json:"supplierOrderId"`
	ReturnReason    *string `json:"returnReason"`
}

// OrderItemResponse línea del pedido con el precio congelado.
type OrderItemResponse struct {
	ProductID       string          `json:"productId"`
	Title           string          `json:"title,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	LocalOrderID    string              `json:"localOrderId"`
	SupplierOrderID *string             `json:"supplierOrderId"`
	User            string              `json:"user"`
	CustomerInfo    ShippingAddress     `json:"customerInfo"`
	PaymentMethod   string              `json:"paymentMethod"`
	Products        []OrderItemResponse `json:"products"`
	Status          string              `json:"status"`
	CourierStatus   *string             `json:"courierStatus"`
	Profit          decimal.Decimal     `json:"profit"`
	Total           decimal.Decimal     `json:"total"`
	ReturnReason    *string             `json:"returnReason"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}
