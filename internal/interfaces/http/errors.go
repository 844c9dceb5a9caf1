package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/domain"
)

// handleError mapea errores de dominio a respuestas HTTP. Todos los handlers
// pasan por aquí para que los códigos sean consistentes en toda la API.
func handleError(c *fiber.Ctx, err error) error {
	var insErr *domain.InsufficientStockError
	if errors.As(err, &insErr) {
		// 409 con el detalle completo de faltantes: el cliente ve todos los
		// ítems cortos en una sola respuesta.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente",
			Details: insErr.Shortfalls,
		})
	}

	switch {
	case errors.Is(err, domain.ErrBOMNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BOM_NOT_FOUND", Message: "receta no encontrada o inactiva"})
	case errors.Is(err, domain.ErrWarehouseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "WAREHOUSE_NOT_FOUND", Message: "bodega no encontrada"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida"})
	case errors.Is(err, domain.ErrEmptyRecipe):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_RECIPE", Message: "la receta no tiene líneas de insumo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrConcurrentStockConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_CONFLICT", Message: "conflicto de stock concurrente, reintente la solicitud"})
	case errors.Is(err, domain.ErrProductionCommitted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCTION_COMMITTED", Message: "una producción confirmada no se elimina; use ajustes compensatorios"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un recurso con ese código o número"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el recurso está referenciado y no puede eliminarse"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: code, Message: message})
}
