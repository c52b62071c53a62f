// Package session contiene el controlador de la sesión de la tienda: el estado
// explícito (catálogo, libro de órdenes, configuración, carrito y descuento) y todas
// las operaciones que lo modifican, serializadas por un único lock.
package session

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/organic-orders/internal/application/auth"
	"github.com/jhoicas/organic-orders/internal/application/catalog"
	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/application/orders"
	"github.com/jhoicas/organic-orders/internal/domain"
	"github.com/jhoicas/organic-orders/internal/domain/cart"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
	"github.com/jhoicas/organic-orders/internal/domain/pricing"
	"github.com/jhoicas/organic-orders/internal/domain/repository"
)

// Nombres de las tareas posteriores al checkout.
const (
	TaskInvoice = "invoice"
	TaskShare   = "share"
)

// Deps dependencias del controlador.
type Deps struct {
	Catalog         *catalog.Manager
	Ledger          *orders.Ledger
	Settings        repository.SettingsRepository
	DefaultSettings entity.Settings
	Gate            *auth.AdminGate
	Invoices        InvoiceRenderer
	Share           ShareComposer
	Slots           SlotCalendar
	Importer        CatalogImporter
	Exporter        OrderExporter
	Tasks           TaskDispatcher
	Log             zerolog.Logger
}

// State estado de la sesión que no vive en el catálogo ni en el libro.
type State struct {
	Settings entity.Settings
	Cart     *cart.Cart
	Discount decimal.Decimal
}

// Controller dueño del estado de la sesión. Cada operación toma el lock completo,
// así el almacenamiento nunca ve dos escritores a la vez.
type Controller struct {
	mu        sync.Mutex
	deps      Deps
	state     State
	artifacts *artifacts
	log       zerolog.Logger
}

// New construye el controlador. Hay que llamar a Start antes de usarlo.
func New(deps Deps) *Controller {
	return &Controller{
		deps: deps,
		state: State{
			Settings: deps.DefaultSettings,
			Cart:     cart.New(),
			Discount: decimal.Zero,
		},
		artifacts: newArtifacts(),
		log:       deps.Log,
	}
}

// Start carga catálogo, órdenes y configuración, y siembra el catálogo si está vacío.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.deps.Catalog.Load(ctx); err != nil {
		return err
	}
	if err := c.deps.Ledger.Load(ctx); err != nil {
		return err
	}
	settings, err := c.deps.Settings.LoadSettings(ctx, c.deps.DefaultSettings)
	if err != nil {
		return fmt.Errorf("session: cargar configuración: %w", err)
	}
	c.state.Settings = settings

	seeded, err := c.deps.Catalog.Seed(ctx)
	if err != nil {
		return fmt.Errorf("session: sembrar catálogo: %w", err)
	}
	if seeded {
		c.log.Info().Int("products", c.deps.Catalog.Count()).Msg("catálogo de ejemplo cargado")
	}
	c.log.Info().
		Int("products", c.deps.Catalog.Count()).
		Int("orders", c.deps.Ledger.Len()).
		Msg("sesión iniciada")
	return nil
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

// Catalog lista el catálogo o filtra por nombre (sin distinguir mayúsculas).
func (c *Controller) Catalog(query string) dto.CatalogResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.deps.Catalog.Search(query, true)
	return dto.CatalogResponse{Items: items, Count: c.deps.Catalog.Count()}
}

// Product devuelve el producto en la posición dada (domain.ErrOutOfRange si no existe).
func (c *Controller) Product(position int) (entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deps.Catalog.Get(position)
}

// ReplaceCatalog reemplaza el catálogo con filas JSON.
func (c *Controller) ReplaceCatalog(ctx context.Context, in []dto.ProductInput) (*dto.CatalogReplaceResponse, error) {
	rows := make([]catalog.Row, 0, len(in))
	for _, p := range in {
		rows = append(rows, catalog.Row{Name: p.Name, Unit: p.Unit, Price: priceText(p.Price)})
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.replaceCatalog(ctx, rows)
}

// ImportCatalog reemplaza el catálogo con un archivo CSV.
func (c *Controller) ImportCatalog(ctx context.Context, r io.Reader) (*dto.CatalogReplaceResponse, error) {
	rows, err := c.deps.Importer.ImportCatalog(r)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.replaceCatalog(ctx, rows)
}

func (c *Controller) replaceCatalog(ctx context.Context, rows []catalog.Row) (*dto.CatalogReplaceResponse, error) {
	products, err := c.deps.Catalog.ReplaceAll(ctx, rows)
	if err != nil {
		return nil, err
	}
	removed := c.state.Cart.Prune(products)
	if removed == nil {
		removed = []string{}
	}
	c.log.Info().Int("products", len(products)).Int("skipped", len(rows)-len(products)).Msg("catálogo reemplazado")
	return &dto.CatalogReplaceResponse{
		Products:        products,
		Imported:        len(products),
		Skipped:         len(rows) - len(products),
		RemovedFromCart: removed,
		Cart:            c.cartView(),
	}, nil
}

// ── Carrito ───────────────────────────────────────────────────────────────────

// Cart devuelve las líneas vivas y los totales actuales.
func (c *Controller) Cart() dto.CartResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cartView()
}

// SetQuantity fija la cantidad de un producto del catálogo y devuelve los totales recalculados.
func (c *Controller) SetQuantity(productID string, raw interface{}) (dto.CartResponse, error) {
	qty, err := toNonNegative(raw, "quantity")
	if err != nil {
		return dto.CartResponse{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, _, err := c.deps.Catalog.GetByID(productID); err != nil {
		return dto.CartResponse{}, err
	}
	if err := c.state.Cart.SetQuantity(productID, qty); err != nil {
		return dto.CartResponse{}, err
	}
	return c.cartView(), nil
}

// SetDiscount fija el descuento del pedido en curso.
func (c *Controller) SetDiscount(raw interface{}) (dto.CartResponse, error) {
	discount, err := toNonNegative(raw, "discount")
	if err != nil {
		return dto.CartResponse{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Discount = discount
	return c.cartView(), nil
}

// ClearCart vacía el carrito y el descuento.
func (c *Controller) ClearCart() dto.CartResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Cart.Clear()
	c.state.Discount = decimal.Zero
	return c.cartView()
}

func (c *Controller) cartView() dto.CartResponse {
	products := c.deps.Catalog.Products()
	lines := c.state.Cart.NonZeroLines(products)
	return dto.CartResponse{
		Lines:    lines,
		Totals:   pricing.ComputeLines(lines, c.state.Settings.DeliveryFee, c.state.Discount),
		Discount: c.state.Discount,
	}
}

// Slots próximas fechas de entrega.
func (c *Controller) Slots() []dto.DeliverySlot {
	return c.deps.Slots.Upcoming()
}

// ── Órdenes ───────────────────────────────────────────────────────────────────

// Checkout registra la orden con el carrito actual, vacía carrito y descuento y
// encola la factura y el mensaje compartido. Un fallo de esas tareas no deshace la orden.
func (c *Controller) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := c.state.Cart.NonZeroLines(c.deps.Catalog.Products())
	order, err := c.deps.Ledger.Create(ctx, orders.CreateInput{
		Customer: entity.Customer{
			Name:    in.Name,
			Phone:   in.Phone,
			Address: in.Address,
			Notes:   in.Notes,
		},
		Slot:        in.Slot,
		Lines:       lines,
		DeliveryFee: c.state.Settings.DeliveryFee,
		Discount:    c.state.Discount,
	})
	if err != nil {
		return nil, err
	}
	c.state.Cart.Clear()
	c.state.Discount = decimal.Zero
	c.log.Info().Str("order_id", order.ID).Str("total", order.Total.StringFixed(2)).Msg("orden registrada")

	c.dispatchArtifacts(order)

	return &dto.CheckoutResponse{
		Order:      order,
		InvoiceURL: "/api/orders/" + order.ID + "/invoice",
		ShareURL:   "/api/orders/" + order.ID + "/share",
		Cart:       c.cartView(),
	}, nil
}

func (c *Controller) dispatchArtifacts(order entity.Order) {
	c.deps.Tasks.Dispatch(TaskShare, order.ID, func() error {
		c.artifacts.putShare(order.ID, c.deps.Share.Compose(order))
		return nil
	})
	c.deps.Tasks.Dispatch(TaskInvoice, order.ID, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		link := c.deps.Share.Compose(order).Link
		pdf, err := c.deps.Invoices.Render(ctx, order, link)
		if err != nil {
			return err
		}
		c.artifacts.putInvoice(order.ID, pdf)
		return nil
	})
}

// Orders página del libro, la más nueva primero.
func (c *Controller) Orders(page dto.PageRequest) dto.OrderListResponse {
	page.DefaultPage()
	c.mu.Lock()
	all := c.deps.Ledger.List()
	c.mu.Unlock()

	total := len(all)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return dto.OrderListResponse{
		Items: all[start:end],
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
}

// Summary resumen del libro.
func (c *Controller) Summary() orders.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deps.Ledger.Summary()
}

// Order busca una orden (domain.ErrNotFound si no existe).
func (c *Controller) Order(id string) (entity.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.deps.Ledger.Find(id)
	if !ok {
		return entity.Order{}, domain.ErrNotFound
	}
	return o, nil
}

// SetDelivered marca o desmarca la entrega. Un ID desconocido devuelve Found=false.
func (c *Controller) SetDelivered(ctx context.Context, id string, delivered bool) (dto.DeliveredResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, found, err := c.deps.Ledger.SetDelivered(ctx, id, delivered)
	if err != nil {
		return dto.DeliveredResponse{}, err
	}
	if !found {
		return dto.DeliveredResponse{Found: false}, nil
	}
	return dto.DeliveredResponse{Found: true, Order: &o}, nil
}

// DeleteOrder elimina la orden si existe.
func (c *Controller) DeleteOrder(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed, err := c.deps.Ledger.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		c.artifacts.forget(id)
	}
	return removed, nil
}

// ClearOrders vacía el libro completo.
func (c *Controller) ClearOrders(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.deps.Ledger.ClearAll(ctx)
	if err != nil {
		return 0, err
	}
	c.artifacts.reset()
	c.log.Warn().Int("removed", n).Msg("libro de órdenes vaciado")
	return n, nil
}

// LoadForEdit recarga una orden en la sesión: el carrito se rearma por ID de producto
// y el descuento se restaura. Los ítems sin producto vigente se informan en Missing.
// Volver a confirmar crea una orden nueva; la original no se toca.
func (c *Controller) LoadForEdit(id string) (*dto.EditResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.deps.Ledger.Find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := cart.New()
	missing := []entity.OrderItem{}
	for _, it := range o.Items {
		if it.ProductID == "" {
			missing = append(missing, it)
			continue
		}
		if _, _, err := c.deps.Catalog.GetByID(it.ProductID); err != nil {
			missing = append(missing, it)
			continue
		}
		qty := next.Quantity(it.ProductID).Add(it.Qty)
		if err := next.SetQuantity(it.ProductID, qty); err != nil {
			missing = append(missing, it)
		}
	}
	c.state.Cart = next
	c.state.Discount = o.Discount

	return &dto.EditResponse{
		OrderID:  o.ID,
		Customer: o.Customer(),
		Slot:     o.Slot.UTC().Format(time.RFC3339),
		Discount: o.Discount,
		Cart:     c.cartView(),
		Missing:  missing,
	}, nil
}

// Invoice devuelve el PDF de la orden; si la tarea asíncrona aún no lo dejó listo
// (o falló) se genera en el momento.
func (c *Controller) Invoice(ctx context.Context, id string) ([]byte, error) {
	o, err := c.Order(id)
	if err != nil {
		return nil, err
	}
	if pdf, ok := c.artifacts.invoice(id); ok {
		return pdf, nil
	}
	pdf, err := c.deps.Invoices.Render(ctx, o, c.deps.Share.Compose(o).Link)
	if err != nil {
		return nil, fmt.Errorf("session: factura %s: %w", id, err)
	}
	c.artifacts.putInvoice(id, pdf)
	return pdf, nil
}

// Share devuelve el texto compartible y el enlace wa.me de la orden.
func (c *Controller) Share(id string) (dto.ShareResponse, error) {
	o, err := c.Order(id)
	if err != nil {
		return dto.ShareResponse{}, err
	}
	if msg, ok := c.artifacts.share(id); ok {
		return msg, nil
	}
	msg := c.deps.Share.Compose(o)
	c.artifacts.putShare(id, msg)
	return msg, nil
}

// ── Administración ────────────────────────────────────────────────────────────

// Unlock compara el passcode con la configuración vigente y emite el token de admin.
func (c *Controller) Unlock(passcode string) (*dto.UnlockResponse, error) {
	c.mu.Lock()
	expected := c.state.Settings.AdminPass
	c.mu.Unlock()
	resp, err := c.deps.Gate.Unlock(expected, passcode)
	if err != nil {
		c.log.Warn().Msg("intento de desbloqueo con passcode incorrecto")
		return nil, err
	}
	return resp, nil
}

// Settings configuración visible (sin el passcode).
func (c *Controller) Settings() dto.SettingsResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dto.SettingsResponse{DeliveryFee: c.state.Settings.DeliveryFee, Cart: c.cartView()}
}

// UpdateSettings cambia el costo de envío y/o el passcode y recalcula los totales.
func (c *Controller) UpdateSettings(ctx context.Context, in dto.SettingsRequest) (dto.SettingsResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state.Settings
	if in.DeliveryFee != nil {
		fee, err := toNonNegative(in.DeliveryFee, "delivery fee")
		if err != nil {
			return dto.SettingsResponse{}, err
		}
		next.DeliveryFee = fee
	}
	if in.AdminPass != nil {
		pass := strings.TrimSpace(*in.AdminPass)
		if pass == "" {
			return dto.SettingsResponse{}, domain.NewValidationError("passcode cannot be empty")
		}
		next.AdminPass = pass
	}
	if err := c.deps.Settings.SaveSettings(ctx, next); err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("session: guardar configuración: %w", err)
	}
	c.state.Settings = next
	return dto.SettingsResponse{DeliveryFee: next.DeliveryFee, Cart: c.cartView()}, nil
}

// ExportCSV exporta el libro como CSV.
func (c *Controller) ExportCSV() ([]byte, error) {
	c.mu.Lock()
	list := c.deps.Ledger.List()
	c.mu.Unlock()
	return c.deps.Exporter.OrdersCSV(list)
}

// ExportXLSX exporta el libro como hoja de cálculo.
func (c *Controller) ExportXLSX(w io.Writer) error {
	c.mu.Lock()
	list := c.deps.Ledger.List()
	c.mu.Unlock()
	return c.deps.Exporter.OrdersXLSX(list, w)
}

// Snapshot copia del estado para inspección (tests y diagnóstico).
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := cart.New()
	for _, l := range c.state.Cart.NonZeroLines(c.deps.Catalog.Products()) {
		_ = cp.SetQuantity(l.Product.ID, l.Qty)
	}
	return State{Settings: c.state.Settings, Cart: cp, Discount: c.state.Discount}
}
