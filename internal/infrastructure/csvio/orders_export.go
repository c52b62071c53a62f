package csvio

import (
	"fmt"
	"io"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/organic-orders/internal/domain"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// MsgNoOrders mensaje al exportar un libro vacío.
const MsgNoOrders = "No orders to export"

const (
	slotDateLayout    = "2006-01-02"
	deliveredAtLayout = "2006-01-02T15:04:05.000Z07:00"
	xlsxSheet         = "Sheet1"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// orderRecord fila exportada; el orden de los campos define el de las columnas.
type orderRecord struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Phone       string `csv:"phone"`
	Address     string `csv:"address"`
	SlotDate    string `csv:"slotDate"`
	Subtotal    string `csv:"subtotal"`
	DeliveryFee string `csv:"deliveryFee"`
	Discount    string `csv:"discount"`
	Total       string `csv:"total"`
	Status      string `csv:"status"`
	DeliveredAt string `csv:"deliveredAt"`
	ItemsJSON   string `csv:"itemsJSON"`
}

// OrderColumns encabezado de la exportación.
var OrderColumns = []string{
	"id", "name", "phone", "address", "slotDate", "subtotal", "deliveryFee",
	"discount", "total", "status", "deliveredAt", "itemsJSON",
}

func toRecords(orders []entity.Order) ([]*orderRecord, error) {
	if len(orders) == 0 {
		return nil, domain.NewValidationError(MsgNoOrders)
	}
	out := make([]*orderRecord, 0, len(orders))
	for _, o := range orders {
		items, err := json.MarshalToString(o.Items)
		if err != nil {
			return nil, fmt.Errorf("export: serializar items de %s: %w", o.ID, err)
		}
		rec := &orderRecord{
			ID:          o.ID,
			Name:        o.Name,
			Phone:       o.Phone,
			Address:     o.Address,
			SlotDate:    o.Slot.UTC().Format(slotDateLayout),
			Subtotal:    o.Subtotal.StringFixed(2),
			DeliveryFee: o.DeliveryFee.StringFixed(2),
			Discount:    o.Discount.StringFixed(2),
			Total:       o.Total.StringFixed(2),
			Status:      o.Status,
			ItemsJSON:   items,
		}
		if o.DeliveredAt != nil {
			rec.DeliveredAt = o.DeliveredAt.UTC().Format(deliveredAtLayout)
		}
		out = append(out, rec)
	}
	return out, nil
}

// OrdersCSV serializa el libro (más nueva primero) como CSV con comillas RFC 4180.
func OrdersCSV(orders []entity.Order) ([]byte, error) {
	records, err := toRecords(orders)
	if err != nil {
		return nil, err
	}
	out, err := gocsv.MarshalBytes(&records)
	if err != nil {
		return nil, fmt.Errorf("export: csv: %w", err)
	}
	return out, nil
}

// OrdersXLSX escribe las mismas filas en una hoja de cálculo. Los montos van como números.
func OrdersXLSX(orders []entity.Order, w io.Writer) error {
	records, err := toRecords(orders)
	if err != nil {
		return err
	}
	xlsx := excelize.NewFile()
	for col, name := range OrderColumns {
		xlsx.SetCellValue(xlsxSheet, cell(col, 1), name)
	}
	for i, rec := range records {
		row := i + 2
		o := orders[i]
		values := []interface{}{
			rec.ID, rec.Name, rec.Phone, rec.Address, rec.SlotDate,
			o.Subtotal.InexactFloat64(), o.DeliveryFee.InexactFloat64(),
			o.Discount.InexactFloat64(), o.Total.InexactFloat64(),
			rec.Status, rec.DeliveredAt, rec.ItemsJSON,
		}
		for col, v := range values {
			xlsx.SetCellValue(xlsxSheet, cell(col, row), v)
		}
	}
	if err := xlsx.Write(w); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}

// ExportFilename nombre sugerido para la descarga.
func ExportFilename(ext string, now time.Time) string {
	return "orders-export-" + now.UTC().Format("20060102") + "." + ext
}
