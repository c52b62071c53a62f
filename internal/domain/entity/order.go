package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de entrega de una orden.
const (
	OrderStatusPending   = "Pending"
	OrderStatusDelivered = "Delivered"
)

// OrderItem es una foto inmutable de la línea del carrito al momento del checkout.
// Amount = Price * Qty; no cambia si luego se edita el producto.
type OrderItem struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	Qty       decimal.Decimal `json:"qty"`
	Amount    decimal.Decimal `json:"amount"`
}

// Order representa un pedido registrado en el libro de órdenes.
type Order struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Notes       string          `json:"notes"`
	Slot        time.Time       `json:"slotISO"`
	Items       []OrderItem     `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Delivered   bool            `json:"delivered"`
	CreatedAt   time.Time       `json:"createdAt"`
	DeliveredAt *time.Time      `json:"deliveredAt"`
}

// MarkDelivered cambia el estado de entrega manteniendo consistentes
// Delivered, Status y DeliveredAt.
func (o *Order) MarkDelivered(delivered bool, now time.Time) {
	o.Delivered = delivered
	if delivered {
		o.Status = OrderStatusDelivered
		at := now
		o.DeliveredAt = &at
		return
	}
	o.Status = OrderStatusPending
	o.DeliveredAt = nil
}

// Customer devuelve los datos de contacto de la orden.
func (o *Order) Customer() Customer {
	return Customer{Name: o.Name, Phone: o.Phone, Address: o.Address, Notes: o.Notes}
}
