package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/application/session"
)

// CartHandler maneja el carrito de la sesión y las fechas de entrega.
type CartHandler struct {
	ctl *session.Controller
	log zerolog.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(ctl *session.Controller, log zerolog.Logger) *CartHandler {
	return &CartHandler{ctl: ctl, log: log}
}

// Get godoc
// @Summary      Carrito actual con totales
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.ctl.Cart())
}

// SetQuantity godoc
// @Summary      Fijar cantidad de un producto (0 lo quita)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.SetQuantityRequest  true  "Cantidad"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctl.SetQuantity(param(c, "productId"), in.Qty)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetDiscount godoc
// @Summary      Fijar descuento del pedido
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetDiscountRequest  true  "Descuento"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/discount [put]
func (h *CartHandler) SetDiscount(c *fiber.Ctx) error {
	var in dto.SetDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctl.SetDiscount(in.Discount)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar carrito y descuento
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	return c.JSON(h.ctl.ClearCart())
}

// Slots godoc
// @Summary      Próximas fechas de entrega
// @Tags         cart
// @Produce      json
// @Success      200  {array}  dto.DeliverySlot
// @Router       /api/slots [get]
func (h *CartHandler) Slots(c *fiber.Ctx) error {
	return c.JSON(h.ctl.Slots())
}
