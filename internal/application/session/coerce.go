package session

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/organic-orders/internal/domain"
)

// toDecimal convierte un valor JSON (número, texto o nulo) en decimal.
// Nulo o texto vacío es cero; NaN, infinito o texto no numérico es un ValidationError.
func toDecimal(v interface{}, field string) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if _, isBool := v.(bool); isBool {
		return decimal.Zero, domain.NewValidationError(field + " must be a number")
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, nil
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return d, nil
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, domain.NewValidationError(field + " must be a number")
	}
	return decimal.NewFromFloat(f), nil
}

// toNonNegative igual que toDecimal pero rechaza negativos.
func toNonNegative(v interface{}, field string) (decimal.Decimal, error) {
	d, err := toDecimal(v, field)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, domain.NewValidationError(field + " cannot be negative")
	}
	return d, nil
}

// priceText normaliza el precio de una fila JSON al texto que valida el catálogo.
func priceText(v interface{}) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return p
	default:
		f, err := cast.ToFloat64E(p)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		return decimal.NewFromFloat(f).String()
	}
}
