package entity

// Customer datos de contacto capturados en el checkout. No se persiste aparte de la orden.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}
