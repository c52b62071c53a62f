package csvio

import (
	"io"

	"github.com/jhoicas/organic-orders/internal/application/catalog"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// Codec agrupa importación y exportación para inyectarlas como dependencia.
type Codec struct{}

// NewCodec construye el codec.
func NewCodec() Codec { return Codec{} }

// ImportCatalog ver ImportCatalog.
func (Codec) ImportCatalog(r io.Reader) ([]catalog.Row, error) { return ImportCatalog(r) }

// OrdersCSV ver OrdersCSV.
func (Codec) OrdersCSV(orders []entity.Order) ([]byte, error) { return OrdersCSV(orders) }

// OrdersXLSX ver OrdersXLSX.
func (Codec) OrdersXLSX(orders []entity.Order, w io.Writer) error { return OrdersXLSX(orders, w) }
