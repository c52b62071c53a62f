package repository

import (
	"context"

	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia del catálogo (lista completa).
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) ([]entity.Product, error)
	SaveCatalog(ctx context.Context, products []entity.Product) error
}
