package http

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/application/session"
	"github.com/jhoicas/organic-orders/internal/infrastructure/csvio"
	"github.com/jhoicas/organic-orders/internal/infrastructure/dispatch"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// NotificationSource cola de avisos de tareas asíncronas.
type NotificationSource interface {
	Drain() []dispatch.Notification
}

// AdminHandler desbloqueo, configuración, exportaciones y avisos.
type AdminHandler struct {
	ctl           *session.Controller
	notifications NotificationSource
	log           zerolog.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(ctl *session.Controller, notifications NotificationSource, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{ctl: ctl, notifications: notifications, log: log}
}

// Unlock godoc
// @Summary      Desbloquear el panel de administración
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UnlockRequest  true  "Passcode"
// @Success      200   {object}  dto.UnlockResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/unlock [post]
func (h *AdminHandler) Unlock(c *fiber.Ctx) error {
	var in dto.UnlockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctl.Unlock(in.Passcode)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetSettings godoc
// @Summary      Ver configuración
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/admin/settings [get]
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.ctl.Settings())
}

// UpdateSettings godoc
// @Summary      Cambiar costo de envío y/o passcode
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettingsRequest  true  "Cambios"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/settings [put]
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctl.UpdateSettings(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar órdenes a CSV
// @Tags         admin
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/export/orders.csv [get]
func (h *AdminHandler) ExportCSV(c *fiber.Ctx) error {
	out, err := h.ctl.ExportCSV()
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+csvio.ExportFilename("csv", time.Now())+`"`)
	return c.Send(out)
}

// ExportXLSX godoc
// @Summary      Exportar órdenes a XLSX
// @Tags         admin
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/export/orders.xlsx [get]
func (h *AdminHandler) ExportXLSX(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.ctl.ExportXLSX(&buf); err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+csvio.ExportFilename("xlsx", time.Now())+`"`)
	return c.Send(buf.Bytes())
}

// Notifications godoc
// @Summary      Avisos de tareas posteriores al checkout (se vacían al leerlos)
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dispatch.Notification
// @Router       /api/notifications [get]
func (h *AdminHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(h.notifications.Drain())
}
