// Package orders mantiene el libro de órdenes: alta desde el carrito, cambio de estado
// de entrega, borrado y consultas. La lista vive en memoria y se persiste completa
// en cada mutación, de la más nueva a la más antigua.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/bwmarrin/snowflake"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/organic-orders/internal/domain"
	"github.com/jhoicas/organic-orders/internal/domain/cart"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
	"github.com/jhoicas/organic-orders/internal/domain/pricing"
	"github.com/jhoicas/organic-orders/internal/domain/repository"
)

// Mensajes de validación del checkout.
const (
	MsgMissingDetails = "fill customer details and delivery slot"
	MsgEmptyCart      = "add at least one item"
	MsgInvalidSlot    = "delivery slot is not a valid date"
)

// IDPrefix prefijo de los IDs de orden.
const IDPrefix = "ORD"

// CreateInput datos de una orden nueva.
type CreateInput struct {
	Customer    entity.Customer
	Slot        string // fecha/hora en cualquier formato reconocible
	Lines       []cart.Line
	DeliveryFee decimal.Decimal
	Discount    decimal.Decimal
}

// Summary resumen del libro de órdenes.
type Summary struct {
	Orders      int             `json:"orders"`
	Pending     int             `json:"pending"`
	Delivered   int             `json:"delivered"`
	Revenue     decimal.Decimal `json:"revenue"`
	Outstanding decimal.Decimal `json:"outstanding"`
	MeanTotal   decimal.Decimal `json:"meanTotal"`
	MedianTotal decimal.Decimal `json:"medianTotal"`
}

// Ledger dueño de la lista de órdenes. El acceso concurrente lo serializa el llamador.
type Ledger struct {
	repo   repository.OrderRepository
	node   *snowflake.Node
	now    func() time.Time
	orders []entity.Order
}

// NewLedger construye el libro. now permite fijar el reloj en tests; nil usa time.Now.
func NewLedger(repo repository.OrderRepository, node *snowflake.Node, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{repo: repo, node: node, now: now}
}

// Load lee las órdenes persistidas.
func (l *Ledger) Load(ctx context.Context) error {
	list, err := l.repo.LoadOrders(ctx)
	if err != nil {
		return fmt.Errorf("orders: cargar: %w", err)
	}
	l.orders = list
	return nil
}

// ParseSlot interpreta la fecha de entrega en UTC.
func ParseSlot(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.NewValidationError(MsgMissingDetails)
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, domain.NewValidationError(MsgInvalidSlot)
	}
	return t.UTC(), nil
}

// Create valida los datos, toma una foto de las líneas del carrito, calcula totales
// y agrega la orden al principio del libro.
func (l *Ledger) Create(ctx context.Context, in CreateInput) (entity.Order, error) {
	c := entity.Customer{
		Name:    strings.TrimSpace(in.Customer.Name),
		Phone:   strings.TrimSpace(in.Customer.Phone),
		Address: strings.TrimSpace(in.Customer.Address),
		Notes:   strings.TrimSpace(in.Customer.Notes),
	}
	if c.Name == "" || c.Phone == "" || c.Address == "" || strings.TrimSpace(in.Slot) == "" {
		return entity.Order{}, domain.NewValidationError(MsgMissingDetails)
	}
	slot, err := ParseSlot(in.Slot)
	if err != nil {
		return entity.Order{}, err
	}

	items := make([]entity.OrderItem, 0, len(in.Lines))
	live := make([]cart.Line, 0, len(in.Lines))
	for _, ln := range in.Lines {
		if !ln.Qty.IsPositive() {
			continue
		}
		live = append(live, ln)
		items = append(items, entity.OrderItem{
			ProductID: ln.Product.ID,
			Name:      ln.Product.Name,
			Unit:      ln.Product.Unit,
			Price:     ln.Product.Price,
			Qty:       ln.Qty,
			Amount:    ln.Qty.Mul(ln.Product.Price),
		})
	}
	if len(items) == 0 {
		return entity.Order{}, domain.NewValidationError(MsgEmptyCart)
	}

	totals := pricing.ComputeLines(live, in.DeliveryFee, in.Discount)
	order := entity.Order{
		ID:          IDPrefix + l.node.Generate().String(),
		Name:        c.Name,
		Phone:       c.Phone,
		Address:     c.Address,
		Notes:       c.Notes,
		Slot:        slot,
		Items:       items,
		Subtotal:    totals.Subtotal,
		DeliveryFee: totals.DeliveryFee,
		Discount:    totals.Discount,
		Total:       totals.Total,
		Status:      entity.OrderStatusPending,
		CreatedAt:   l.now().UTC(),
	}

	next := make([]entity.Order, 0, len(l.orders)+1)
	next = append(next, order)
	next = append(next, l.orders...)
	if err := l.commit(ctx, next); err != nil {
		return entity.Order{}, err
	}
	return snapshot(order), nil
}

// SetDelivered cambia el estado de entrega. Un ID desconocido no es error: devuelve found=false.
func (l *Ledger) SetDelivered(ctx context.Context, id string, delivered bool) (entity.Order, bool, error) {
	idx := l.index(id)
	if idx < 0 {
		return entity.Order{}, false, nil
	}
	next := l.clone()
	next[idx].MarkDelivered(delivered, l.now().UTC())
	if err := l.commit(ctx, next); err != nil {
		return entity.Order{}, true, err
	}
	return snapshot(next[idx]), true, nil
}

// Delete elimina la orden. Si no existe no hace nada.
func (l *Ledger) Delete(ctx context.Context, id string) (bool, error) {
	idx := l.index(id)
	if idx < 0 {
		return false, nil
	}
	next := make([]entity.Order, 0, len(l.orders)-1)
	next = append(next, l.orders[:idx]...)
	next = append(next, l.orders[idx+1:]...)
	if err := l.commit(ctx, next); err != nil {
		return true, err
	}
	return true, nil
}

// ClearAll vacía el libro y devuelve cuántas órdenes había.
func (l *Ledger) ClearAll(ctx context.Context) (int, error) {
	n := len(l.orders)
	if err := l.commit(ctx, []entity.Order{}); err != nil {
		return 0, err
	}
	return n, nil
}

// Find busca una orden por ID.
func (l *Ledger) Find(id string) (entity.Order, bool) {
	idx := l.index(id)
	if idx < 0 {
		return entity.Order{}, false
	}
	return snapshot(l.orders[idx]), true
}

// List devuelve una copia del libro, la más nueva primero.
func (l *Ledger) List() []entity.Order {
	return l.clone()
}

// Len cantidad de órdenes.
func (l *Ledger) Len() int { return len(l.orders) }

// Summary cuenta órdenes por estado y calcula ingresos, media y mediana del total.
func (l *Ledger) Summary() Summary {
	s := Summary{
		Revenue:     decimal.Zero,
		Outstanding: decimal.Zero,
		MeanTotal:   decimal.Zero,
		MedianTotal: decimal.Zero,
	}
	totals := make(stats.Float64Data, 0, len(l.orders))
	for _, o := range l.orders {
		s.Orders++
		if o.Delivered {
			s.Delivered++
			s.Revenue = s.Revenue.Add(o.Total)
		} else {
			s.Pending++
			s.Outstanding = s.Outstanding.Add(o.Total)
		}
		totals = append(totals, o.Total.InexactFloat64())
	}
	if len(totals) == 0 {
		return s
	}
	if mean, err := totals.Mean(); err == nil {
		s.MeanTotal = decimal.NewFromFloat(mean).Round(2)
	}
	if median, err := totals.Median(); err == nil {
		s.MedianTotal = decimal.NewFromFloat(median).Round(2)
	}
	return s
}

func (l *Ledger) index(id string) int {
	for i := range l.orders {
		if l.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) clone() []entity.Order {
	out := make([]entity.Order, len(l.orders))
	for i := range l.orders {
		out[i] = snapshot(l.orders[i])
	}
	return out
}

// snapshot copia la orden con sus propios Items y DeliveredAt.
func snapshot(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.DeliveredAt != nil {
		at := *o.DeliveredAt
		o.DeliveredAt = &at
	}
	return o
}

// commit persiste next y solo entonces lo adopta como estado en memoria.
func (l *Ledger) commit(ctx context.Context, next []entity.Order) error {
	if err := l.repo.SaveOrders(ctx, next); err != nil {
		return fmt.Errorf("orders: guardar: %w", err)
	}
	l.orders = next
	return nil
}
