package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/application/session"
	"github.com/jhoicas/organic-orders/internal/infrastructure/pdf"
)

// OrderHandler maneja el checkout y el libro de órdenes.
type OrderHandler struct {
	ctl *session.Controller
	log zerolog.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(ctl *session.Controller, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{ctl: ctl, log: log}
}

// Checkout godoc
// @Summary      Confirmar el pedido con el carrito actual
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Cliente y fecha de entrega"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctl.Checkout(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes (más nueva primero)
// @Tags         orders
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit and offset must be integers"})
	}
	return c.JSON(h.ctl.Orders(page))
}

// Summary godoc
// @Summary      Resumen del libro de órdenes
// @Tags         orders
// @Produce      json
// @Success      200  {object}  orders.Summary
// @Router       /api/orders/summary [get]
func (h *OrderHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.ctl.Summary())
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.ctl.Order(param(c, "id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(o)
}

// SetDelivered godoc
// @Summary      Marcar o desmarcar entrega
// @Description  Un ID desconocido responde 200 con found=false.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la orden"
// @Param        body  body  dto.DeliveredRequest  true  "Estado"
// @Success      200  {object}  dto.DeliveredResponse
// @Router       /api/orders/{id}/delivered [patch]
func (h *OrderHandler) SetDelivered(c *fiber.Ctx) error {
	var in dto.DeliveredRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctl.SetDelivered(c.UserContext(), param(c, "id"), in.Delivered)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden (sin efecto si no existe)
// @Tags         orders
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.ctl.DeleteOrder(c.UserContext(), param(c, "id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearAll godoc
// @Summary      Eliminar todas las órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        confirm  query  bool  true  "Debe ser true"
// @Success      200  {object}  dto.ClearOrdersResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [delete]
func (h *OrderHandler) ClearAll(c *fiber.Ctx) error {
	if !c.QueryBool("confirm", false) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFIRMATION_REQUIRED", Message: "add ?confirm=true to clear all orders"})
	}
	n, err := h.ctl.ClearOrders(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ClearOrdersResponse{Removed: n})
}

// Edit godoc
// @Summary      Recargar una orden en la sesión para editarla
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.EditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/edit [post]
func (h *OrderHandler) Edit(c *fiber.Ctx) error {
	out, err := h.ctl.LoadForEdit(param(c, "id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Invoice godoc
// @Summary      Descargar factura PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	id := param(c, "id")
	out, err := h.ctl.Invoice(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+pdf.Filename(id)+`"`)
	return c.Send(out)
}

// Share godoc
// @Summary      Texto y enlace para compartir la orden
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ShareResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/share [get]
func (h *OrderHandler) Share(c *fiber.Ctx) error {
	out, err := h.ctl.Share(param(c, "id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
