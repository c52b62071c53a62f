package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo de la tienda.
// ID es estable entre importaciones; la posición en la lista sigue siendo la referencia visible.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit"` // kg, dozen, litre, 6 pcs...
	Price decimal.Decimal `json:"price"`
}
