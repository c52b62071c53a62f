package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/jhoicas/organic-orders/internal/application/dto"
	"github.com/jhoicas/organic-orders/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Lo que no es de dominio es 500 y se registra.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	msg, hasMsg := domain.UserMessage(err)
	if !hasMsg {
		msg = err.Error()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: msg})
	case errors.Is(err, domain.ErrOutOfRange):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "OUT_OF_RANGE", Message: "no product at that position"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "not found"})
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}

// param copia el parámetro de ruta: fasthttp recicla el buffer de la petición y
// el valor puede terminar como clave del carrito o de la caché de artefactos.
func param(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.Params(key))
}
