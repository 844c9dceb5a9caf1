// Package bom contiene la explosión de recetas como servicio de dominio puro
// (sin efectos secundarios, aritmética decimal para evitar deriva de redondeo).
package bom

import (
	"github.com/shopspring/decimal"

	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
)

// Requirement es un insumo escalado: ítem y cantidad requerida para la
// cantidad de salida solicitada.
type Requirement struct {
	ItemID   string
	Quantity decimal.Decimal
}

// Explode escala las líneas de la receta a la cantidad de salida solicitada:
//
//	requerido = cantidadLínea × (solicitado / cantidadSalidaPorLote)
//
// Mantiene el orden de las líneas. Falla con ErrInvalidQuantity si la cantidad
// solicitada (o la cantidad por lote de la receta) no es mayor que cero, y con
// ErrEmptyRecipe si la receta no tiene líneas.
func Explode(b *entity.BOM, quantity decimal.Decimal) ([]Requirement, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if !b.OutputQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if len(b.Lines) == 0 {
		return nil, domain.ErrEmptyRecipe
	}

	factor := quantity.Div(b.OutputQuantity)
	reqs := make([]Requirement, 0, len(b.Lines))
	for _, line := range b.Lines {
		reqs = append(reqs, Requirement{
			ItemID:   line.ItemID,
			Quantity: line.Quantity.Mul(factor),
		})
	}
	return reqs, nil
}
