// Package pricing reúne las reglas de precio del catálogo (servicios de dominio puros).
package pricing

import "github.com/shopspring/decimal"

// Markup fijo sobre el costo del proveedor: 50%.
var Markup = decimal.RequireFromString("1.5")

// MoneyPlaces decimales con que se almacenan los montos (NUMERIC(14,2)).
const MoneyPlaces = 2

// RoundCost redondea el costo del proveedor a la escala almacenada.
// El precio de venta se deriva siempre del costo ya redondeado.
func RoundCost(cost decimal.Decimal) decimal.Decimal {
	return cost.Round(MoneyPlaces)
}

// SellingPrice calcula el precio de venta a partir del costo del proveedor.
// PrecioVenta = ⌈Costo × 1.5⌉ (redondeo hacia arriba a la unidad monetaria entera).
func SellingPrice(cost decimal.Decimal) decimal.Decimal {
	return cost.Mul(Markup).Ceil()
}

// LineProfit calcula la ganancia de una línea: (PrecioVenta − Costo) × Cantidad.
func LineProfit(selling, cost decimal.Decimal, quantity int) decimal.Decimal {
	return selling.Sub(cost).Mul(decimal.NewFromInt(int64(quantity)))
}
