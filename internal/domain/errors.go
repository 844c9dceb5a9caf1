package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Fallas del motor de producción y del libro de inventario.
	ErrBOMNotFound             = errors.New("receta (BOM) no encontrada o inactiva")
	ErrWarehouseNotFound       = errors.New("bodega no encontrada")
	ErrInvalidQuantity         = errors.New("cantidad inválida: debe ser mayor que cero")
	ErrEmptyRecipe             = errors.New("la receta no tiene líneas de insumo")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrConcurrentStockConflict = errors.New("conflicto de stock concurrente: reintente la producción")
	ErrProductionCommitted     = errors.New("la producción ya fue confirmada: el historial no se elimina")
)
