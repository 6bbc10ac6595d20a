package order

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dropforge-api/internal/application/dto"
	"github.com/jhoicas/dropforge-api/internal/domain"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/policy"
	"github.com/jhoicas/dropforge-api/internal/domain/pricing"
	"github.com/jhoicas/dropforge-api/internal/domain/repository"
	"github.com/jhoicas/dropforge-api/pkg/logger"
)

// DefaultPaymentMethod se usa cuando el pedido no indica método de pago (contra entrega).
const DefaultPaymentMethod = "cod"

// maxLocalIDAttempts intentos de generar un local_order_id libre antes de rendirse.
const maxLocalIDAttempts = 3

// OrderUseCase casos de uso de pedidos: creación con validación de stock, lecturas y cambios de estado.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	txRunner    OrderTxRunner
	slips       SlipGenerator
	log         *logger.Logger
	now         func() time.Time
	newLocalID  func(time.Time) (string, error)
}

// NewOrderUseCase construye el caso de uso. slips puede ser nil si no se exponen remitos.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	txRunner OrderTxRunner,
	slips SlipGenerator,
	log *logger.Logger,
) *OrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txRunner:    txRunner,
		slips:       slips,
		log:         log.Component("orders"),
		now:         time.Now,
		newLocalID:  GenerateLocalOrderID,
	}
}

// GenerateLocalOrderID arma el identificador legible ORD-<unix millis>-<0..999>.
// La unicidad es probabilística; el índice único de local_order_id es la garantía real.
func GenerateLocalOrderID(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("generar sufijo de pedido: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), n.Int64()), nil
}

// CreateOrder valida cada línea en el orden recibido, calcula la ganancia y persiste el pedido en estado pending.
// Si una línea falla (producto inexistente, sin stock, cantidad inválida) no se escribe nada.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, caller policy.Caller, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !policy.Allowed(caller, policy.ActionCreateOrder) {
		return nil, domain.ErrUnauthorized
	}
	if len(in.OrderItems) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	info, err := customerInfo(in.ShippingAddress)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		UserID:        caller.UserID,
		CustomerInfo:  info,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Status:        entity.OrderStatusPending,
		Profit:        decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = DefaultPaymentMethod
	}

	for i, line := range in.OrderItems {
		if line.Qty <= 0 {
			return nil, fmt.Errorf("%w: la cantidad del producto %s debe ser mayor a cero", domain.ErrInvalidInput, line.Product)
		}
		product, err := uc.productRepo.GetByID(ctx, line.Product)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, line.Product)
		}
		if !product.Available() {
			return nil, fmt.Errorf("%w: %s", domain.ErrOutOfStock, product.Title)
		}
		order.Profit = order.Profit.Add(pricing.LineProfit(product.SellingPrice, product.CostPrice, line.Qty))
		order.Items = append(order.Items, entity.OrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       product.ID,
			ProductTitle:    product.Title,
			Quantity:        line.Qty,
			PriceAtPurchase: product.SellingPrice,
			Position:        i,
		})
	}

	for attempt := 1; ; attempt++ {
		localID, err := uc.newLocalID(now)
		if err != nil {
			return nil, err
		}
		order.LocalOrderID = localID
		err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
			return orderRepo.Create(ctx, order)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == maxLocalIDAttempts {
			return nil, err
		}
		uc.log.Warn().Str("local_order_id", localID).Int("attempt", attempt).Msg("local_order_id repetido, se genera otro")
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("local_order_id", order.LocalOrderID).
		Str("user_id", order.UserID).
		Int("items", len(order.Items)).
		Str("profit", order.Profit.String()).
		Msg("pedido creado")
	return ToOrderResponse(order), nil
}

// GetOrder devuelve un pedido si el caller es administrador o su dueño; ErrUnauthorized en otro caso.
func (uc *OrderUseCase) GetOrder(ctx context.Context, caller policy.Caller, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccess(caller, policy.ActionReadOrder, order.UserID) {
		return nil, domain.ErrUnauthorized
	}
	return ToOrderResponse(order), nil
}

// ListMine lista los pedidos del caller, más recientes primero.
func (uc *OrderUseCase) ListMine(ctx context.Context, caller policy.Caller) ([]dto.OrderResponse, error) {
	if !policy.Allowed(caller, policy.ActionListOwnOrders) {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.orderRepo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListAll lista todos los pedidos (administradores).
func (uc *OrderUseCase) ListAll(ctx context.Context, caller policy.Caller) ([]dto.OrderResponse, error) {
	if !policy.Allowed(caller, policy.ActionListAllOrders) {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// UpdateStatus aplica una actualización parcial: los campos nil o vacíos no cambian.
// El estado nuevo solo se valida contra los valores conocidos; no hay tabla de transiciones.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, caller policy.Caller, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !policy.Allowed(caller, policy.ActionUpdateOrderStatus) {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := trimmed(in.Status); v != "" {
		if !entity.IsValidOrderStatus(v) {
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, v)
		}
		order.Status = v
	}
	if v := trimmed(in.CourierStatus); v != "" {
		order.CourierStatus = &v
	}
	if v := trimmed(in.SupplierOrderID); v != "" {
		order.SupplierOrderID = &v
	}
	if v := trimmed(in.ReturnReason); v != "" {
		order.ReturnReason = &v
	}
	order.UpdatedAt = uc.now()
	if err := uc.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("status", order.Status).Str("by", caller.UserID).Msg("estado de pedido actualizado")
	return ToOrderResponse(order), nil
}

// Slip genera el remito PDF del pedido. Devuelve también el local_order_id para nombrar el archivo.
func (uc *OrderUseCase) Slip(ctx context.Context, caller policy.Caller, id string) ([]byte, string, error) {
	if !policy.Allowed(caller, policy.ActionPrintSlip) {
		return nil, "", domain.ErrUnauthorized
	}
	if uc.slips == nil {
		return nil, "", errors.New("generador de remitos no configurado")
	}
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.slips.GenerateSlip(order)
	if err != nil {
		return nil, "", fmt.Errorf("generar remito: %w", err)
	}
	return pdf, order.LocalOrderID, nil
}

func (uc *OrderUseCase) load(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func customerInfo(in dto.ShippingAddress) (entity.CustomerInfo, error) {
	info := entity.CustomerInfo{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		City:    strings.TrimSpace(in.City),
	}
	if info.Name == "" || info.Phone == "" || info.Address == "" || info.City == "" {
		return info, fmt.Errorf("%w: shippingAddress requiere name, phone, address y city", domain.ErrInvalidInput)
	}
	return info, nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// ToOrderResponse convierte la entidad a su DTO de salida.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:       it.ProductID,
			Title:           it.ProductTitle,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}
	return &dto.OrderResponse{
		ID:              o.ID,
		LocalOrderID:    o.LocalOrderID,
		SupplierOrderID: o.SupplierOrderID,
		User:            o.UserID,
		CustomerInfo: dto.ShippingAddress{
			Name:    o.CustomerInfo.Name,
			Phone:   o.CustomerInfo.Phone,
			Address: o.CustomerInfo.Address,
			City:    o.CustomerInfo.City,
		},
		PaymentMethod: o.PaymentMethod,
		Products:      items,
		Status:        o.Status,
		CourierStatus: o.CourierStatus,
		Profit:        o.Profit,
		Total:         o.Total(),
		ReturnReason:  o.ReturnReason,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o))
	}
	return out
}
