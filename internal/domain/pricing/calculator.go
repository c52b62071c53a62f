package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/organic-orders/internal/domain/cart"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// Totals desglose de montos del carrito u orden.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// Compute calcula los totales del carrito contra el catálogo (servicio de dominio, sin efectos).
// Total = max(0, Subtotal + DeliveryFee - Discount)
func Compute(c *cart.Cart, catalog []entity.Product, deliveryFee, discount decimal.Decimal) Totals {
	return ComputeLines(c.NonZeroLines(catalog), deliveryFee, discount)
}

// ComputeLines igual que Compute pero sobre líneas ya resueltas.
func ComputeLines(lines []cart.Line, deliveryFee, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		if !l.Qty.IsPositive() {
			continue
		}
		subtotal = subtotal.Add(l.Qty.Mul(l.Product.Price))
	}
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Discount:    discount,
		Total:       clampTotal(subtotal, deliveryFee, discount),
	}
}

func clampTotal(subtotal, deliveryFee, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(deliveryFee).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
