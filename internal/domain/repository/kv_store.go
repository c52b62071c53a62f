package repository

import "context"

// Claves persistidas: tres valores independientes.
const (
	KeyCatalog  = "catalog"
	KeyOrders   = "orders"
	KeySettings = "settings"
)

// KVStore define el puerto de persistencia clave-valor (DIP).
// Cada clave guarda un único valor que se reemplaza completo en cada Put.
type KVStore interface {
	// Get devuelve los bytes guardados y false si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
