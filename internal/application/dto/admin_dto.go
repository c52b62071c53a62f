package dto

import "github.com/shopspring/decimal"

// UnlockRequest passcode del panel de administración.
type UnlockRequest struct {
	Passcode string `json:"passcode"`
}

// UnlockResponse token Bearer para las rutas de administración.
type UnlockResponse struct {
	Token string `json:"token"`
}

// SettingsRequest cambios de configuración; los campos nulos no se tocan.
type SettingsRequest struct {
	DeliveryFee interface{} `json:"deliveryFee"`
	AdminPass   *string     `json:"adminPass"`
}

// SettingsResponse configuración visible. El passcode nunca se devuelve.
type SettingsResponse struct {
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Cart        CartResponse    `json:"cart"`
}
