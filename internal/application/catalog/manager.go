// Package catalog administra la lista de productos de la tienda: reemplazo masivo,
// búsqueda y acceso por posición o por ID estable.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/organic-orders/internal/domain"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
	"github.com/jhoicas/organic-orders/internal/domain/repository"
)

// MsgNoValidRows mensaje cuando una importación no deja ninguna fila utilizable.
const MsgNoValidRows = "no valid rows"

// Row fila cruda de catálogo (importación CSV o JSON). Price llega como texto.
type Row struct {
	Name  string
	Unit  string
	Price string
}

// Match resultado de búsqueda: posición en el catálogo y producto.
type Match struct {
	Position int            `json:"position"`
	Product  entity.Product `json:"product"`
}

// Manager dueño de la lista de productos. No es seguro para uso concurrente:
// el controlador de sesión serializa el acceso.
type Manager struct {
	repo     repository.CatalogRepository
	products []entity.Product
	newID    func() string
}

// NewManager construye el manager sobre el repositorio dado.
func NewManager(repo repository.CatalogRepository) *Manager {
	return &Manager{repo: repo, newID: uuid.NewString}
}

// Load lee el catálogo persistido.
func (m *Manager) Load(ctx context.Context) error {
	products, err := m.repo.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("catalog: cargar: %w", err)
	}
	m.products = products
	return nil
}

// SampleProducts catálogo de ejemplo de una tienda nueva.
func SampleProducts() []Row {
	return []Row{
		{Name: "Tomato", Unit: "kg", Price: "40"},
		{Name: "Banana (Robusta)", Unit: "dozen", Price: "55"},
		{Name: "Cold-pressed Groundnut Oil", Unit: "litre", Price: "280"},
		{Name: "Tur Dal (Organic)", Unit: "kg", Price: "190"},
		{Name: "Country Eggs", Unit: "6 pcs", Price: "70"},
	}
}

// Seed carga los productos de ejemplo si el catálogo está vacío. Devuelve true si sembró.
func (m *Manager) Seed(ctx context.Context) (bool, error) {
	if len(m.products) > 0 {
		return false, nil
	}
	if _, err := m.ReplaceAll(ctx, SampleProducts()); err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceAll valida las filas, descarta las inválidas y reemplaza el catálogo completo.
// Una fila es válida con nombre y unidad no vacíos y precio numérico no negativo.
// Si ninguna fila es válida devuelve ValidationError y el catálogo anterior queda intacto.
// Un producto conserva su ID si ya existía uno con el mismo nombre (sin distinguir
// mayúsculas) y la misma unidad.
func (m *Manager) ReplaceAll(ctx context.Context, rows []Row) ([]entity.Product, error) {
	existing := make(map[string]string, len(m.products))
	for _, p := range m.products {
		k := identityKey(p.Name, p.Unit)
		if _, dup := existing[k]; !dup {
			existing[k] = p.ID
		}
	}

	next := make([]entity.Product, 0, len(rows))
	for _, r := range rows {
		p, ok := parseRow(r)
		if !ok {
			continue
		}
		k := identityKey(p.Name, p.Unit)
		if id, found := existing[k]; found {
			p.ID = id
			delete(existing, k)
		} else {
			p.ID = m.newID()
		}
		next = append(next, p)
	}
	if len(next) == 0 {
		return nil, domain.NewValidationError(MsgNoValidRows)
	}
	if err := m.repo.SaveCatalog(ctx, next); err != nil {
		return nil, fmt.Errorf("catalog: guardar: %w", err)
	}
	m.products = next
	return m.Products(), nil
}

func parseRow(r Row) (entity.Product, bool) {
	name := strings.TrimSpace(r.Name)
	unit := strings.TrimSpace(r.Unit)
	if name == "" || unit == "" {
		return entity.Product{}, false
	}
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil || price.IsNegative() {
		return entity.Product{}, false
	}
	return entity.Product{Name: name, Unit: unit, Price: price}, true
}

func identityKey(name, unit string) string {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(name)) + "\x00" + fold.String(strings.TrimSpace(unit))
}

// Products devuelve una copia del catálogo en orden.
func (m *Manager) Products() []entity.Product {
	out := make([]entity.Product, len(m.products))
	copy(out, m.products)
	return out
}

// Count número de productos.
func (m *Manager) Count() int { return len(m.products) }

// Get devuelve el producto en la posición dada.
func (m *Manager) Get(position int) (entity.Product, error) {
	if position < 0 || position >= len(m.products) {
		return entity.Product{}, domain.ErrOutOfRange
	}
	return m.products[position], nil
}

// GetByID busca un producto por su ID estable y devuelve también su posición.
func (m *Manager) GetByID(id string) (entity.Product, int, error) {
	for i, p := range m.products {
		if p.ID == id {
			return p, i, nil
		}
	}
	return entity.Product{}, -1, domain.ErrNotFound
}

// Search devuelve los productos cuyo nombre contiene substring, en orden de catálogo.
// Un substring vacío devuelve todo el catálogo.
func (m *Manager) Search(substring string, caseInsensitive bool) []Match {
	needle := strings.TrimSpace(substring)
	fold := cases.Fold()
	if caseInsensitive {
		needle = fold.String(needle)
	}
	out := make([]Match, 0, len(m.products))
	for i, p := range m.products {
		name := p.Name
		if caseInsensitive {
			name = fold.String(name)
		}
		if strings.Contains(name, needle) {
			out = append(out, Match{Position: i, Product: p})
		}
	}
	return out
}
