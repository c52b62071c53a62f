package repository

import (
	"context"

	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// SettingsRepository define el puerto de persistencia de la configuración de la tienda.
// LoadSettings devuelve def si no hay nada guardado o lo guardado es ilegible.
type SettingsRepository interface {
	LoadSettings(ctx context.Context, def entity.Settings) (entity.Settings, error)
	SaveSettings(ctx context.Context, settings entity.Settings) error
}
