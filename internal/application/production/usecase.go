// Package production implementa el motor de producción: explosión de receta,
// validación de disponibilidad y conversión atómica de insumos en producto
// terminado entre dos bodegas (que pueden ser la misma).
package production

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	dombom "github.com/mfbgull/mini-erp-sub001/internal/domain/bom"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

// ProductionUseCase orquesta el ciclo de una solicitud de producción:
// RECEIVED → EXPLODED → VALIDATED → COMMITTED, con salida REJECTED desde
// cualquier estado sin tocar el libro. Es el único componente que escribe
// movimientos PRODUCTION_IN/PRODUCTION_OUT.
type ProductionUseCase struct {
	txRunner       ledger.TxRunner
	bomRepo        repository.BOMRepository
	itemRepo       repository.ItemRepository
	warehouseRepo  repository.WarehouseRepository
	stockRepo      repository.StockRepository
	movementRepo   repository.StockMovementRepository
	productionRepo repository.ProductionRepository
}

// NewProductionUseCase construye el motor. stockRepo/movementRepo/productionRepo
// van atados al pool (lecturas fuera de transacción).
func NewProductionUseCase(
	txRunner ledger.TxRunner,
	bomRepo repository.BOMRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	productionRepo repository.ProductionRepository,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:       txRunner,
		bomRepo:        bomRepo,
		itemRepo:       itemRepo,
		warehouseRepo:  warehouseRepo,
		stockRepo:      stockRepo,
		movementRepo:   movementRepo,
		productionRepo: productionRepo,
	}
}

// CreateProductionInput entrada para una solicitud de producción.
type CreateProductionInput struct {
	BOMID               string
	Quantity            decimal.Decimal
	RawWarehouseID      string
	FinishedWarehouseID string
	Date                time.Time
	Remarks             string
}

// CreateProduction valida la solicitud, explota la receta y confirma el lote
// de movimientos junto con la cabecera en una sola transacción.
//
// Si el commit detecta un faltante que la validación no vio (otra producción
// drenó stock en medio), reintenta UNA vez desde la validación; si vuelve a
// fallar, devuelve ErrConcurrentStockConflict: conflictos repetidos indican
// que los datos de planeación están desactualizados y el caller debe
// reenviar la solicitud.
func (uc *ProductionUseCase) CreateProduction(ctx context.Context, input CreateProductionInput) (*entity.ProductionRecord, error) {
	rawWh, err := uc.warehouseRepo.GetByID(input.RawWarehouseID)
	if err != nil {
		return nil, err
	}
	if rawWh == nil {
		return nil, domain.ErrWarehouseNotFound
	}
	finishedWh, err := uc.warehouseRepo.GetByID(input.FinishedWarehouseID)
	if err != nil {
		return nil, err
	}
	if finishedWh == nil {
		return nil, domain.ErrWarehouseNotFound
	}

	b, err := uc.bomRepo.GetByID(input.BOMID)
	if err != nil {
		return nil, err
	}
	if b == nil || !b.Active {
		return nil, domain.ErrBOMNotFound
	}

	reqs, err := dombom.Explode(b, input.Quantity)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	for attempt := 0; attempt < 2; attempt++ {
		if err := uc.validate(reqs, input.RawWarehouseID); err != nil {
			return nil, err
		}
		record, err := uc.commit(ctx, b, reqs, input, date)
		if err == nil {
			return record, nil
		}
		var insErr *domain.InsufficientStockError
		if !errors.As(err, &insErr) {
			return nil, err
		}
		// La validación pasó pero el commit encontró faltante bajo el lock:
		// carrera clásica check-then-act, reintenta desde VALIDATED.
	}
	return nil, domain.ErrConcurrentStockConflict
}

// validate lee el saldo de cada insumo en la bodega de materia prima y
// recolecta TODOS los faltantes, no solo el primero, para que el caller
// pueda reportar cada ítem corto en una sola pasada.
func (uc *ProductionUseCase) validate(reqs []dombom.Requirement, rawWarehouseID string) error {
	var shortfalls []domain.Shortfall
	for _, req := range reqs {
		bal, err := uc.stockRepo.Get(req.ItemID, rawWarehouseID)
		if err != nil {
			return err
		}
		if bal.Quantity.LessThan(req.Quantity) {
			code := ""
			if item, err := uc.itemRepo.GetByID(req.ItemID); err == nil && item != nil {
				code = item.Code
			}
			shortfalls = append(shortfalls, domain.Shortfall{
				ItemID:    req.ItemID,
				ItemCode:  code,
				Available: bal.Quantity,
				Required:  req.Quantity,
			})
		}
	}
	if len(shortfalls) > 0 {
		return &domain.InsufficientStockError{Shortfalls: shortfalls}
	}
	return nil
}

// commit arma el lote (un PRODUCTION_OUT por insumo, un PRODUCTION_IN por la
// salida) y lo confirma junto con la cabecera en una sola transacción. El
// invariante saldo >= 0 se re-verifica bajo SELECT FOR UPDATE dentro del lote.
func (uc *ProductionUseCase) commit(ctx context.Context, b *entity.BOM, reqs []dombom.Requirement, input CreateProductionInput, date time.Time) (*entity.ProductionRecord, error) {
	prodID := uuid.New().String()

	drafts := make([]ledger.MovementDraft, 0, len(reqs)+1)
	for _, req := range reqs {
		drafts = append(drafts, ledger.MovementDraft{
			ItemID:      req.ItemID,
			WarehouseID: input.RawWarehouseID,
			Type:        entity.MovementTypePRODUCTIONOUT,
			Quantity:    req.Quantity.Neg(),
			Reference:   prodID,
			Remarks:     input.Remarks,
			Date:        date,
		})
	}
	drafts = append(drafts, ledger.MovementDraft{
		ItemID:      b.OutputItemID,
		WarehouseID: input.FinishedWarehouseID,
		Type:        entity.MovementTypePRODUCTIONIN,
		Quantity:    input.Quantity,
		Reference:   prodID,
		Remarks:     input.Remarks,
		Date:        date,
	})

	var record *entity.ProductionRecord
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		counterRepo repository.CounterRepository,
		productionRepo repository.ProductionRepository,
	) error {
		committed, err := ledger.AppendInTx(movRepo, stockRepo, counterRepo, drafts)
		if err != nil {
			return err
		}
		n, err := counterRepo.Next(ledger.CounterProduction)
		if err != nil {
			return err
		}
		bomID := b.ID
		record = &entity.ProductionRecord{
			ID:                  prodID,
			Number:              ledger.ProductionNumber(n),
			BOMID:               &bomID,
			OutputItemID:        b.OutputItemID,
			Quantity:            input.Quantity,
			RawWarehouseID:      input.RawWarehouseID,
			FinishedWarehouseID: input.FinishedWarehouseID,
			Date:                date,
			Remarks:             input.Remarks,
			CreatedAt:           time.Now(),
		}
		if err := productionRepo.Create(record); err != nil {
			return err
		}
		record.Movements = committed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetByID devuelve la cabecera con sus movimientos. nil si no existe.
func (uc *ProductionUseCase) GetByID(id string) (*entity.ProductionRecord, error) {
	record, err := uc.productionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	movements, err := uc.movementRepo.ListByReference(id)
	if err != nil {
		return nil, err
	}
	record.Movements = movements
	return record, nil
}

// List devuelve cabeceras paginadas (sin movimientos).
func (uc *ProductionUseCase) List(limit, offset int) ([]*entity.ProductionRecord, error) {
	return uc.productionRepo.List(limit, offset)
}

// Delete rechaza el borrado de producciones confirmadas: eliminar la cabecera
// sin revertir los movimientos desincronizaría el historial de los saldos.
// La reversión se modela como movimientos ADJUSTMENT compensatorios, nunca
// mutando el historial.
func (uc *ProductionUseCase) Delete(id string) error {
	record, err := uc.productionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}
	return domain.ErrProductionCommitted
}
