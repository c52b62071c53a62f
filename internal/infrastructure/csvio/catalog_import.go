// Package csvio importa el catálogo desde CSV y exporta el libro de órdenes a CSV y XLSX.
package csvio

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/organic-orders/internal/application/catalog"
	"github.com/jhoicas/organic-orders/internal/domain"
)

// MsgMissingColumns mensaje cuando el encabezado no trae las columnas obligatorias.
const MsgMissingColumns = "CSV must have columns: name, unit, price"

var requiredColumns = []string{"name", "unit", "price"}

type catalogRecord struct {
	Name  string `csv:"name"`
	Unit  string `csv:"unit"`
	Price string `csv:"price"`
}

// recordReader entrega a gocsv registros ya normalizados.
type recordReader struct {
	records [][]string
	next    int
}

func (r *recordReader) Read() ([]string, error) {
	if r.next >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.next]
	r.next++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.next:]
	r.next = len(r.records)
	return rest, nil
}

// ImportCatalog lee un CSV con encabezado name,unit,price (sin distinguir mayúsculas,
// en cualquier orden, columnas extra ignoradas). Las filas no se validan aquí: eso
// lo hace catalog.Manager.ReplaceAll.
func ImportCatalog(r io.Reader) ([]catalog.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, domain.NewValidationError("CSV could not be read: " + err.Error())
	}
	if len(records) == 0 {
		return nil, domain.NewValidationError(MsgMissingColumns)
	}

	header := records[0]
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		header[i] = h
		seen[h] = true
	}
	for _, col := range requiredColumns {
		if !seen[col] {
			return nil, domain.NewValidationError(MsgMissingColumns)
		}
	}

	normalized := make([][]string, 0, len(records))
	normalized = append(normalized, header)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make([]string, len(header))
		for i := range row {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		normalized = append(normalized, row)
	}
	if len(normalized) == 1 {
		return []catalog.Row{}, nil
	}

	var parsed []catalogRecord
	if err := gocsv.UnmarshalCSV(&recordReader{records: normalized}, &parsed); err != nil {
		return nil, domain.NewValidationError("CSV could not be read: " + err.Error())
	}

	rows := make([]catalog.Row, 0, len(parsed))
	for _, p := range parsed {
		rows = append(rows, catalog.Row{Name: p.Name, Unit: p.Unit, Price: p.Price})
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
