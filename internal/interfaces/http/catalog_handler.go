package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/application/session"
)

// CatalogHandler maneja las peticiones HTTP del catálogo.
type CatalogHandler struct {
	ctl *session.Controller
	log zerolog.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(ctl *session.Controller, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{ctl: ctl, log: log}
}

// List godoc
// @Summary      Listar o buscar productos
// @Tags         catalog
// @Produce      json
// @Param        q    query  string  false  "Texto a buscar en el nombre"
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.ctl.Catalog(c.Query("q")))
}

// GetByPosition godoc
// @Summary      Producto por posición
// @Tags         catalog
// @Produce      json
// @Param        position  path  int  true  "Posición (desde 0)"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/{position} [get]
func (h *CatalogHandler) GetByPosition(c *fiber.Ctx) error {
	pos, err := c.ParamsInt("position")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_POSITION", Message: "position must be an integer"})
	}
	p, err := h.ctl.Product(pos)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(p)
}

// Replace godoc
// @Summary      Reemplazar el catálogo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReplaceCatalogRequest  true  "Productos"
// @Success      200   {object}  dto.CatalogReplaceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog [put]
func (h *CatalogHandler) Replace(c *fiber.Ctx) error {
	var in dto.ReplaceCatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctl.ReplaceCatalog(c.UserContext(), in.Products)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar catálogo desde CSV
// @Description  Archivo multipart en el campo "file" o CSV en el cuerpo. Columnas name, unit, price.
// @Tags         catalog
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  false  "CSV"
// @Success      200   {object}  dto.CatalogReplaceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog/import [post]
func (h *CatalogHandler) Import(c *fiber.Ctx) error {
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badBody(c)
		}
		defer f.Close()
		r = f
	} else {
		r = bytes.NewReader(c.Body())
	}
	out, err := h.ctl.ImportCatalog(c.UserContext(), r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
