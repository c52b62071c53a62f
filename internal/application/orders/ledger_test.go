package orders_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/organic-orders/internal/application/orders"
	"github.com/jhoicas/organic-orders/internal/domain"
	"github.com/jhoicas/organic-orders/internal/domain/cart"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
	"github.com/jhoicas/organic-orders/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type brokenRepo struct{}

func (brokenRepo) LoadOrders(context.Context) ([]entity.Order, error) { return nil, nil }
func (brokenRepo) SaveOrders(context.Context, []entity.Order) error {
	return errors.New("sin espacio")
}

func newLedger(t *testing.T) (*orders.Ledger, *storage.Store) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	store := storage.NewStore(storage.NewMemoryKV(), zerolog.Nop())
	l := orders.NewLedger(store, node, func() time.Time { return fixedNow })
	require.NoError(t, l.Load(context.Background()))
	return l, store
}

func lines() []cart.Line {
	tomato := entity.Product{ID: "p-tomato", Name: "Tomato", Unit: "kg", Price: dec("40")}
	eggs := entity.Product{ID: "p-eggs", Name: "Country Eggs", Unit: "6 pcs", Price: dec("70")}
	return []cart.Line{
		{Position: 0, Product: tomato, Qty: dec("2"), Amount: dec("80")},
		{Position: 4, Product: eggs, Qty: dec("1"), Amount: dec("70")},
	}
}

func validInput() orders.CreateInput {
	return orders.CreateInput{
		Customer:    entity.Customer{Name: " Asha ", Phone: "98450", Address: "MG Road", Notes: "gate 2"},
		Slot:        "2026-10-16",
		Lines:       lines(),
		DeliveryFee: dec("20"),
		Discount:    dec("10"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ArmaOrdenPendiente(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)

	o, err := l.Create(ctx, validInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(o.ID, orders.IDPrefix))
	assert.Equal(t, "Asha", o.Name)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), o.Slot)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.False(t, o.Delivered)
	assert.Nil(t, o.DeliveredAt)
	assert.Equal(t, fixedNow, o.CreatedAt)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "p-tomato", o.Items[0].ProductID)
	assert.True(t, dec("80").Equal(o.Items[0].Amount))
	assert.True(t, dec("150").Equal(o.Subtotal))
	assert.True(t, dec("160").Equal(o.Total))

	persisted, err := store.LoadOrders(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, o.ID, persisted[0].ID)
}

func TestCreate_NuevaOrdenVaPrimero(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	first, err := l.Create(ctx, validInput())
	require.NoError(t, err)
	second, err := l.Create(ctx, validInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	list := l.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestCreate_Validaciones(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*orders.CreateInput)
		msg    string
	}{
		{"sin nombre", func(in *orders.CreateInput) { in.Customer.Name = "   " }, orders.MsgMissingDetails},
		{"sin teléfono", func(in *orders.CreateInput) { in.Customer.Phone = "" }, orders.MsgMissingDetails},
		{"sin dirección", func(in *orders.CreateInput) { in.Customer.Address = "" }, orders.MsgMissingDetails},
		{"sin fecha", func(in *orders.CreateInput) { in.Slot = "" }, orders.MsgMissingDetails},
		{"fecha ilegible", func(in *orders.CreateInput) { in.Slot = "someday" }, orders.MsgInvalidSlot},
		{"carrito vacío", func(in *orders.CreateInput) { in.Lines = nil }, orders.MsgEmptyCart},
		{"solo cantidades cero", func(in *orders.CreateInput) {
			in.Lines = []cart.Line{{Product: entity.Product{ID: "x", Price: dec("5")}, Qty: decimal.Zero}}
		}, orders.MsgEmptyCart},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newLedger(t)
			in := validInput()
			tc.mutate(&in)
			_, err := l.Create(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			msg, _ := domain.UserMessage(err)
			assert.Equal(t, tc.msg, msg)
			assert.Equal(t, 0, l.Len())
		})
	}
}

func TestCreate_DescuentoMayorQueTotalDejaCero(t *testing.T) {
	l, _ := newLedger(t)
	in := validInput()
	in.Discount = dec("1000")
	o, err := l.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, o.Total.IsZero())
}

func TestCreate_ErrorDeGuardadoNoAgrega(t *testing.T) {
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	l := orders.NewLedger(brokenRepo{}, node, nil)
	_, err = l.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, 0, l.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de entrega, borrado y limpieza
// ──────────────────────────────────────────────────────────────────────────────

func TestSetDelivered_MantieneInvariante(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	o, err := l.Create(ctx, validInput())
	require.NoError(t, err)

	got, found, err := l.SetDelivered(ctx, o.ID, true)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, got.Delivered)
	assert.Equal(t, entity.OrderStatusDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)
	assert.Equal(t, fixedNow, *got.DeliveredAt)

	persisted, err := store.LoadOrders(ctx)
	require.NoError(t, err)
	assert.True(t, persisted[0].Delivered)

	got, _, err = l.SetDelivered(ctx, o.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Delivered)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	assert.Nil(t, got.DeliveredAt)
}

func TestSetDelivered_IDDesconocidoNoEsError(t *testing.T) {
	l, _ := newLedger(t)
	_, found, err := l.SetDelivered(context.Background(), "ORD0", true)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	a, err := l.Create(ctx, validInput())
	require.NoError(t, err)
	b, err := l.Create(ctx, validInput())
	require.NoError(t, err)

	removed, err := l.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	_, ok := l.Find(a.ID)
	assert.False(t, ok)
	_, ok = l.Find(b.ID)
	assert.True(t, ok)

	removed, err = l.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, l.Len())
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	var ids []string
	for i := 0; i < 3; i++ {
		o, err := l.Create(ctx, validInput())
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	n, err := l.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, l.Len())
	for _, id := range ids {
		_, found := l.Find(id)
		assert.False(t, found, "la orden %s ya no existe", id)
	}

	persisted, err := store.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestFindYList_DevuelvenCopias(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	o, err := l.Create(ctx, validInput())
	require.NoError(t, err)
	_, _, err = l.SetDelivered(ctx, o.ID, true)
	require.NoError(t, err)

	found, ok := l.Find(o.ID)
	require.True(t, ok)
	found.Items[0].Name = "Alterado"
	found.Items[0].Qty = dec("99")
	*found.DeliveredAt = found.DeliveredAt.Add(time.Hour)

	listed := l.List()
	listed[0].Items[1].Name = "Otro"

	again, ok := l.Find(o.ID)
	require.True(t, ok)
	assert.Equal(t, "Tomato", again.Items[0].Name)
	assert.True(t, dec("2").Equal(again.Items[0].Qty))
	assert.Equal(t, "Country Eggs", again.Items[1].Name)
	assert.Equal(t, fixedNow, *again.DeliveredAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	empty := l.Summary()
	assert.Equal(t, 0, empty.Orders)
	assert.True(t, empty.MeanTotal.IsZero())

	discounts := []string{"10", "40", "0"} // totales 160, 130, 170
	var ids []string
	for _, d := range discounts {
		in := validInput()
		in.Discount = dec(d)
		o, err := l.Create(ctx, in)
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	_, _, err := l.SetDelivered(ctx, ids[0], true)
	require.NoError(t, err)

	s := l.Summary()
	assert.Equal(t, 3, s.Orders)
	assert.Equal(t, 1, s.Delivered)
	assert.Equal(t, 2, s.Pending)
	assert.True(t, dec("160").Equal(s.Revenue), s.Revenue.String())
	assert.True(t, dec("300").Equal(s.Outstanding), s.Outstanding.String())
	assert.True(t, dec("153.33").Equal(s.MeanTotal), s.MeanTotal.String())
	assert.True(t, dec("160").Equal(s.MedianTotal), s.MedianTotal.String())
}

func TestParseSlot(t *testing.T) {
	got, err := orders.ParseSlot("2026-10-20T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), got)

	_, err = orders.ParseSlot("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
