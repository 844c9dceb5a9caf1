package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Shortfall describe un faltante de stock para un ítem en la bodega de insumos.
type Shortfall struct {
	ItemID    string          `json:"item_id"`
	ItemCode  string          `json:"item_code,omitempty"`
	Available decimal.Decimal `json:"available"`
	Required  decimal.Decimal `json:"required"`
}

// InsufficientStockError lleva la lista COMPLETA de faltantes (no solo el primero),
// para que el caller pueda reportar todos los ítems cortos en una sola pasada.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		id := s.ItemCode
		if id == "" {
			id = s.ItemID
		}
		parts = append(parts, fmt.Sprintf("%s (disponible %s, requerido %s)", id, s.Available, s.Required))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// Is permite comparar con el sentinel ErrInsufficientStock vía errors.Is.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
