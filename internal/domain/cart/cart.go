// Package cart modela la selección transitoria de cantidades contra el catálogo.
// El carrito solo guarda datos: los montos se derivan del catálogo y los totales
// los calcula el paquete pricing.
package cart

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/organic-orders/internal/domain"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// Cart mapea ID de producto -> cantidad. Solo las cantidades positivas son entradas vivas.
type Cart struct {
	qty map[string]decimal.Decimal
}

// Line es una línea viva del carrito resuelta contra el catálogo.
type Line struct {
	Position int             `json:"position"`
	Product  entity.Product  `json:"product"`
	Qty      decimal.Decimal `json:"qty"`
	Amount   decimal.Decimal `json:"amount"`
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{qty: make(map[string]decimal.Decimal)}
}

// SetQuantity fija la cantidad de un producto. Negativo es inválido; cero elimina la entrada.
func (c *Cart) SetQuantity(productID string, qty decimal.Decimal) error {
	if productID == "" {
		return domain.NewValidationError("product is required")
	}
	if qty.IsNegative() {
		return domain.NewValidationError("quantity cannot be negative")
	}
	if qty.IsZero() {
		delete(c.qty, productID)
		return nil
	}
	c.qty[productID] = qty
	return nil
}

// Quantity devuelve la cantidad del producto (cero si no está).
func (c *Cart) Quantity(productID string) decimal.Decimal {
	if q, ok := c.qty[productID]; ok {
		return q
	}
	return decimal.Zero
}

// Len número de entradas vivas.
func (c *Cart) Len() int { return len(c.qty) }

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.qty = make(map[string]decimal.Decimal)
}

// LineAmount = qty * precio del producto en el catálogo.
func (c *Cart) LineAmount(productID string, catalog []entity.Product) (decimal.Decimal, error) {
	for _, p := range catalog {
		if p.ID == productID {
			return c.Quantity(productID).Mul(p.Price), nil
		}
	}
	return decimal.Zero, domain.ErrNotFound
}

// NonZeroLines devuelve las líneas vivas en el orden del catálogo.
// Las entradas cuyo producto ya no existe se ignoran.
func (c *Cart) NonZeroLines(catalog []entity.Product) []Line {
	lines := make([]Line, 0, len(c.qty))
	for pos, p := range catalog {
		q, ok := c.qty[p.ID]
		if !ok || !q.IsPositive() {
			continue
		}
		lines = append(lines, Line{
			Position: pos,
			Product:  p,
			Qty:      q,
			Amount:   q.Mul(p.Price),
		})
	}
	return lines
}

// Prune elimina las entradas que no existen en el catálogo y devuelve sus IDs ordenados.
func (c *Cart) Prune(catalog []entity.Product) []string {
	known := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		known[p.ID] = struct{}{}
	}
	var removed []string
	for id := range c.qty {
		if _, ok := known[id]; !ok {
			delete(c.qty, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed
}
