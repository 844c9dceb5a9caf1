package repository

import (
	"time"

	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos.
// Campos vacíos/nil no filtran.
type MovementFilter struct {
	ItemID      string
	WarehouseID string
	Type        string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos. Solo inserta y consulta: los movimientos nunca se mutan.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	// ListByReference devuelve los movimientos de un documento (ej. producción).
	ListByReference(reference string) ([]*entity.StockMovement, error)
}
