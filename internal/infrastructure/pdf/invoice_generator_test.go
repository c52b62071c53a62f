package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/organic-orders/internal/domain/entity"
	"github.com/jhoicas/organic-orders/internal/infrastructure/pdf"
)

func TestRender_GeneraPDF(t *testing.T) {
	g := pdf.NewInvoiceGenerator("Organic Grocery", "Tue & Fri deliveries.", "₹")
	order := entity.Order{
		ID:          "ORD1",
		Name:        "Asha",
		Phone:       "98450",
		Address:     "12 MG Road\nBengaluru",
		Slot:        time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC),
		Items:       []entity.OrderItem{{Name: "Tomato", Unit: "kg", Price: decimal.NewFromInt(40), Qty: decimal.NewFromInt(2), Amount: decimal.NewFromInt(80)}},
		Subtotal:    decimal.NewFromInt(80),
		DeliveryFee: decimal.NewFromInt(1200),
		Discount:    decimal.Zero,
		Total:       decimal.NewFromInt(1280),
	}

	out, err := g.Render(context.Background(), order, "https://wa.me/?text=Invoice%20ORD1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	out, err = g.Render(context.Background(), order, "")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "ORD1.pdf", pdf.Filename("ORD1"))
}
