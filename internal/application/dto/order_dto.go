package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// CheckoutRequest datos del cliente y fecha de entrega.
type CheckoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Slot    string `json:"slot"`
}

// CheckoutResponse orden creada y enlaces a sus artefactos.
type CheckoutResponse struct {
	Order      entity.Order `json:"order"`
	InvoiceURL string       `json:"invoiceUrl"`
	ShareURL   string       `json:"shareUrl"`
	Cart       CartResponse `json:"cart"`
}

// OrderListResponse página del libro de órdenes (más nueva primero).
type OrderListResponse struct {
	Items []entity.Order `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DeliveredRequest nuevo estado de entrega.
type DeliveredRequest struct {
	Delivered bool `json:"delivered"`
}

// DeliveredResponse Found=false si la orden no existe (no es un error).
type DeliveredResponse struct {
	Found bool          `json:"found"`
	Order *entity.Order `json:"order,omitempty"`
}

// ClearOrdersResponse cantidad de órdenes eliminadas.
type ClearOrdersResponse struct {
	Removed int `json:"removed"`
}

// EditResponse datos de una orden recargados en la sesión para volver a enviarla.
// Missing lista los ítems cuyo producto ya no está en el catálogo.
type EditResponse struct {
	OrderID  string             `json:"orderId"`
	Customer entity.Customer    `json:"customer"`
	Slot     string             `json:"slot"`
	Discount decimal.Decimal    `json:"discount"`
	Cart     CartResponse       `json:"cart"`
	Missing  []entity.OrderItem `json:"missing"`
}

// ShareResponse texto plano de la orden y enlace wa.me.
type ShareResponse struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// DeliverySlot fecha de entrega ofrecida.
type DeliverySlot struct {
	ISO   string `json:"iso"`
	Label string `json:"label"`
}
