package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/organic-orders/internal/domain/entity"
	"github.com/jhoicas/organic-orders/internal/domain/repository"
	"github.com/jhoicas/organic-orders/internal/infrastructure/bolt"
	"github.com/jhoicas/organic-orders/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleOrder() entity.Order {
	created := time.Date(2026, 10, 13, 9, 30, 0, 0, time.UTC)
	delivered := created.Add(48 * time.Hour)
	return entity.Order{
		ID:      "ORD1",
		Name:    "Asha",
		Phone:   "98450 00000",
		Address: "12, MG Road, Bengaluru",
		Notes:   "ring twice",
		Slot:    time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		Items: []entity.OrderItem{
			{ProductID: "p1", Name: "Tomato", Unit: "kg", Price: dec("40"), Qty: dec("2"), Amount: dec("80")},
		},
		Subtotal:    dec("80"),
		DeliveryFee: dec("10"),
		Discount:    dec("5"),
		Total:       dec("85"),
		Status:      entity.OrderStatusDelivered,
		Delivered:   true,
		CreatedAt:   created,
		DeliveredAt: &delivered,
	}
}

func assertSameOrder(t *testing.T, want, got entity.Order) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Customer(), got.Customer())
	assert.True(t, want.Slot.Equal(got.Slot))
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.DeliveredAt)
	assert.True(t, want.DeliveredAt.Equal(*got.DeliveredAt))
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.Delivered, got.Delivered)
	for _, pair := range [][2]decimal.Decimal{
		{want.Subtotal, got.Subtotal}, {want.DeliveryFee, got.DeliveryFee},
		{want.Discount, got.Discount}, {want.Total, got.Total},
	} {
		assert.True(t, pair[0].Equal(pair[1]), "want %s got %s", pair[0], pair[1])
	}
	require.Len(t, got.Items, len(want.Items))
	for i := range want.Items {
		assert.Equal(t, want.Items[i].Name, got.Items[i].Name)
		assert.Equal(t, want.Items[i].ProductID, got.Items[i].ProductID)
		assert.True(t, want.Items[i].Amount.Equal(got.Items[i].Amount))
		assert.True(t, want.Items[i].Qty.Equal(got.Items[i].Qty))
	}
}

func stores(t *testing.T) map[string]repository.KVStore {
	t.Helper()
	b, err := bolt.Open(filepath.Join(t.TempDir(), "data", "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return map[string]repository.KVStore{
		"memory": storage.NewMemoryKV(),
		"bolt":   b,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip de las tres colecciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := storage.NewStore(kv, zerolog.Nop())

			products := []entity.Product{
				{ID: "p1", Name: "Tomato", Unit: "kg", Price: dec("40")},
				{ID: "p2", Name: "Country Eggs", Unit: "6 pcs", Price: dec("70.50")},
			}
			require.NoError(t, s.SaveCatalog(ctx, products))
			gotProducts, err := s.LoadCatalog(ctx)
			require.NoError(t, err)
			require.Len(t, gotProducts, 2)
			for i := range products {
				assert.Equal(t, products[i].ID, gotProducts[i].ID)
				assert.Equal(t, products[i].Name, gotProducts[i].Name)
				assert.Equal(t, products[i].Unit, gotProducts[i].Unit)
				assert.True(t, products[i].Price.Equal(gotProducts[i].Price))
			}

			order := sampleOrder()
			require.NoError(t, s.SaveOrders(ctx, []entity.Order{order}))
			gotOrders, err := s.LoadOrders(ctx)
			require.NoError(t, err)
			require.Len(t, gotOrders, 1)
			assertSameOrder(t, order, gotOrders[0])

			settings := entity.Settings{DeliveryFee: dec("25"), AdminPass: "secret"}
			require.NoError(t, s.SaveSettings(ctx, settings))
			gotSettings, err := s.LoadSettings(ctx, entity.DefaultSettings(""))
			require.NoError(t, err)
			assert.Equal(t, "secret", gotSettings.AdminPass)
			assert.True(t, dec("25").Equal(gotSettings.DeliveryFee))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Valores por defecto: clave ausente o valor corrupto
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_ClaveAusenteDevuelveDefault(t *testing.T) {
	ctx := context.Background()
	s := storage.NewStore(storage.NewMemoryKV(), zerolog.Nop())

	products, err := s.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	orders, err := s.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	settings, err := s.LoadSettings(ctx, entity.DefaultSettings(""))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAdminPass, settings.AdminPass)
	assert.True(t, settings.DeliveryFee.IsZero())
}

func TestStore_ValorCorruptoDevuelveDefault(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, repository.KeySettings, []byte("{not json")))
	require.NoError(t, kv.Put(ctx, repository.KeyOrders, []byte(`{"id": 1}`)))
	s := storage.NewStore(kv, zerolog.Nop())

	settings, err := s.LoadSettings(ctx, entity.DefaultSettings("fallback"))
	require.NoError(t, err, "un valor corrupto no es un error para el llamador")
	assert.Equal(t, "fallback", settings.AdminPass)

	orders, err := s.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestBoltKV_PersisteEntreAperturas(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orders.db")

	first, err := bolt.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "k", []byte("v1")))
	require.NoError(t, first.Put(ctx, "k", []byte("v2")))
	require.NoError(t, first.Close())

	second, err := bolt.Open(path)
	require.NoError(t, err)
	defer second.Close()
	got, ok, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", string(got))

	_, ok, err = second.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
