// Package storage implementa los repositorios de catálogo, órdenes y configuración
// sobre cualquier KVStore, serializando cada colección completa como JSON.
package storage

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/organic-orders/internal/domain/entity"
	"github.com/jhoicas/organic-orders/internal/domain/repository"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	_ repository.CatalogRepository  = (*Store)(nil)
	_ repository.OrderRepository    = (*Store)(nil)
	_ repository.SettingsRepository = (*Store)(nil)
)

// Store guarda las tres colecciones en claves independientes.
type Store struct {
	kv  repository.KVStore
	log zerolog.Logger
}

// NewStore construye el adaptador. log se usa para avisar de valores corruptos.
func NewStore(kv repository.KVStore, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Load decodifica el valor de key en dst. Devuelve false si la clave no existe o el
// valor guardado no se puede decodificar (en ese caso dst no se modifica).
func (s *Store) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("leer %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("valor guardado ilegible, se usa el valor por defecto")
		return false, nil
	}
	return true, nil
}

// Save serializa value y reemplaza el valor completo de key.
func (s *Store) Save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("guardar %s: %w", key, err)
	}
	return nil
}

// LoadCatalog devuelve el catálogo guardado o una lista vacía.
func (s *Store) LoadCatalog(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	ok, err := s.Load(ctx, repository.KeyCatalog, &products)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.Product{}, nil
	}
	return products, nil
}

// SaveCatalog reemplaza el catálogo completo.
func (s *Store) SaveCatalog(ctx context.Context, products []entity.Product) error {
	return s.Save(ctx, repository.KeyCatalog, products)
}

// LoadOrders devuelve las órdenes guardadas (más nueva primero) o una lista vacía.
func (s *Store) LoadOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	ok, err := s.Load(ctx, repository.KeyOrders, &orders)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.Order{}, nil
	}
	return orders, nil
}

// SaveOrders reemplaza el libro de órdenes completo.
func (s *Store) SaveOrders(ctx context.Context, orders []entity.Order) error {
	return s.Save(ctx, repository.KeyOrders, orders)
}

// LoadSettings devuelve la configuración guardada o def.
func (s *Store) LoadSettings(ctx context.Context, def entity.Settings) (entity.Settings, error) {
	var settings entity.Settings
	ok, err := s.Load(ctx, repository.KeySettings, &settings)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return settings, nil
}

// SaveSettings reemplaza la configuración.
func (s *Store) SaveSettings(ctx context.Context, settings entity.Settings) error {
	return s.Save(ctx, repository.KeySettings, settings)
}
