package session

import (
	"context"
	"io"

	"github.com/jhoicas/organic-orders/internal/application/catalog"
	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// InvoiceRenderer genera el documento imprimible de una orden.
type InvoiceRenderer interface {
	Render(ctx context.Context, order entity.Order, shareLink string) ([]byte, error)
}

// ShareComposer arma el texto compartible de una orden.
type ShareComposer interface {
	Compose(order entity.Order) dto.ShareResponse
}

// SlotCalendar ofrece las próximas fechas de entrega.
type SlotCalendar interface {
	Upcoming() []dto.DeliverySlot
}

// CatalogImporter convierte un archivo en filas de catálogo.
type CatalogImporter interface {
	ImportCatalog(r io.Reader) ([]catalog.Row, error)
}

// OrderExporter serializa el libro de órdenes.
type OrderExporter interface {
	OrdersCSV(orders []entity.Order) ([]byte, error)
	OrdersXLSX(orders []entity.Order, w io.Writer) error
}

// TaskDispatcher ejecuta tareas posteriores al checkout sin bloquearlo.
type TaskDispatcher interface {
	Dispatch(task, orderID string, fn func() error)
}
