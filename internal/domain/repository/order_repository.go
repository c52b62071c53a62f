package repository

import (
	"context"

	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia del libro de órdenes.
// La lista se guarda completa, de la más nueva a la más antigua.
type OrderRepository interface {
	LoadOrders(ctx context.Context) ([]entity.Order, error)
	SaveOrders(ctx context.Context, orders []entity.Order) error
}
