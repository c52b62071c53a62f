package dto

import (
	"github.com/jhoicas/organic-orders/internal/application/catalog"
	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// ProductInput fila de catálogo enviada como JSON. Price acepta número o texto.
type ProductInput struct {
	Name  string      `json:"name"`
	Unit  string      `json:"unit"`
	Price interface{} `json:"price"`
}

// ReplaceCatalogRequest reemplazo completo del catálogo.
type ReplaceCatalogRequest struct {
	Products []ProductInput `json:"products"`
}

// CatalogResponse resultado de listar o buscar.
type CatalogResponse struct {
	Items []catalog.Match `json:"items"`
	Count int             `json:"count"`
}

// CatalogReplaceResponse resultado de un reemplazo o importación.
type CatalogReplaceResponse struct {
	Products []entity.Product `json:"products"`
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	// IDs que estaban en el carrito y ya no existen en el catálogo.
	RemovedFromCart []string     `json:"removedFromCart"`
	Cart            CartResponse `json:"cart"`
}
