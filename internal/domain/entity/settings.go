package entity

import "github.com/shopspring/decimal"

// DefaultAdminPass passcode con el que arranca una tienda nueva.
const DefaultAdminPass = "organic@123"

// Settings configuración compartida de la tienda (singleton persistente).
type Settings struct {
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	AdminPass   string          `json:"adminPass"`
}

// DefaultSettings devuelve la configuración inicial: sin costo de envío.
func DefaultSettings(adminPass string) Settings {
	if adminPass == "" {
		adminPass = DefaultAdminPass
	}
	return Settings{DeliveryFee: decimal.Zero, AdminPass: adminPass}
}
