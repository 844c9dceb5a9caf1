package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
)

// MovementInput entrada para registrar un movimiento simple en el libro.
// Quantity es siempre positiva para PURCHASE y SALE (el signo lo aplica el
// libro); para ADJUSTMENT viene con signo y distinta de cero.
type MovementInput struct {
	ItemID      string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal
	Reference   string
	Remarks     string
	Date        time.Time
}

// RegisterMovement registra un movimiento PURCHASE, SALE o ADJUSTMENT como
// lote de un solo elemento. Los tipos PRODUCTION_* solo los escribe el motor
// de producción y aquí se rechazan.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	signed := input.Quantity
	switch input.Type {
	case entity.MovementTypePURCHASE:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
	case entity.MovementTypeSALE:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		signed = input.Quantity.Neg()
	case entity.MovementTypeADJUSTMENT:
		if input.Quantity.IsZero() {
			return nil, domain.ErrInvalidQuantity
		}
	default:
		// Incluye PRODUCTION_IN/PRODUCTION_OUT y tipos desconocidos.
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrWarehouseNotFound
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	committed, err := uc.AppendMovements(ctx, []MovementDraft{{
		ItemID:      input.ItemID,
		WarehouseID: input.WarehouseID,
		Type:        input.Type,
		Quantity:    signed,
		Reference:   input.Reference,
		Remarks:     input.Remarks,
		Date:        date,
	}})
	if err != nil {
		return nil, err
	}
	return committed[0], nil
}
