// Package share arma el mensaje de texto de una orden y el enlace wa.me para enviarlo.
package share

import (
	"net/url"
	"strings"

	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

const waBaseURL = "https://wa.me/?text="

// Composer formatea montos con el símbolo de moneda configurado.
type Composer struct {
	currency string
}

// NewComposer construye el compositor. Símbolo vacío usa ₹.
func NewComposer(currencySymbol string) *Composer {
	if currencySymbol == "" {
		currencySymbol = "₹"
	}
	return &Composer{currency: currencySymbol}
}

// Compose arma el texto y el enlace de la orden.
func (c *Composer) Compose(o entity.Order) dto.ShareResponse {
	var b strings.Builder
	b.WriteString("Invoice " + o.ID + "\n")
	b.WriteString("Name: " + o.Name + "\n")
	b.WriteString("Total: " + c.currency + " " + o.Total.StringFixed(2) + "\n")
	b.WriteString("Delivery: " + o.Slot.Format("Mon Jan 02 2006") + "\n")
	b.WriteString("Items:")
	for _, it := range o.Items {
		b.WriteString("\n- " + it.Name + " x " + it.Qty.String() + " = " + c.currency + " " + it.Amount.StringFixed(2))
	}
	text := b.String()
	return dto.ShareResponse{Text: text, Link: Link(text)}
}

// Link codifica text como componente de URL (espacios como %20) y arma el enlace wa.me.
func Link(text string) string {
	return waBaseURL + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
