package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/organic-orders/internal/domain/cart"
	"github.com/jhoicas/organic-orders/internal/domain/pricing"
)

// SetQuantityRequest cantidad nueva de un producto; número o texto.
type SetQuantityRequest struct {
	Qty interface{} `json:"qty"`
}

// SetDiscountRequest descuento del pedido en curso; número o texto.
type SetDiscountRequest struct {
	Discount interface{} `json:"discount"`
}

// CartResponse líneas vivas del carrito con los totales recalculados.
type CartResponse struct {
	Lines    []cart.Line     `json:"lines"`
	Totals   pricing.Totals  `json:"totals"`
	Discount decimal.Decimal `json:"discount"`
}
