package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

// Nombres de consecutivos en document_counters.
const (
	CounterStockMovement = "stock_movement"
	CounterProduction    = "production"
	CounterBOM           = "bom"
)

// MovementNumber formatea el consecutivo de un movimiento (ej. MV-00000042).
func MovementNumber(n int64) string { return fmt.Sprintf("MV-%08d", n) }

// ProductionNumber formatea el consecutivo de una producción (ej. PR-000007).
func ProductionNumber(n int64) string { return fmt.Sprintf("PR-%06d", n) }

// BOMNumber formatea el consecutivo de una receta (ej. BOM-000003).
func BOMNumber(n int64) string { return fmt.Sprintf("BOM-%06d", n) }

// MovementDraft es un movimiento pendiente de confirmar: todavía sin ID ni
// número. El número se asigna al confirmar el lote.
type MovementDraft struct {
	ItemID      string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal // con signo
	Reference   string
	Remarks     string
	Date        time.Time
}

type balanceKey struct {
	itemID      string
	warehouseID string
}

// AppendInTx confirma un lote de movimientos usando repositorios atados a la
// transacción del caller: bloquea las filas de saldo afectadas en orden
// determinista (evita deadlocks), verifica que ningún saldo quede negativo
// (recolecta TODOS los faltantes), asigna números consecutivos y persiste
// movimientos y saldos. El caller hace Commit o Rollback.
func AppendInTx(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	counterRepo repository.CounterRepository,
	drafts []MovementDraft,
) ([]*entity.StockMovement, error) {
	if len(drafts) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Delta neto por clave (ítem, bodega).
	deltas := make(map[balanceKey]decimal.Decimal, len(drafts))
	for _, d := range drafts {
		key := balanceKey{d.ItemID, d.WarehouseID}
		deltas[key] = deltas[key].Add(d.Quantity)
	}
	keys := make([]balanceKey, 0, len(deltas))
	for key := range deltas {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].itemID != keys[j].itemID {
			return keys[i].itemID < keys[j].itemID
		}
		return keys[i].warehouseID < keys[j].warehouseID
	})

	// Bloquea y re-verifica el invariante saldo >= 0 bajo el lock de fila.
	now := time.Now()
	balances := make(map[balanceKey]*entity.StockBalance, len(keys))
	var shortfalls []domain.Shortfall
	for _, key := range keys {
		bal, err := stockRepo.GetForUpdate(key.itemID, key.warehouseID)
		if err != nil {
			return nil, err
		}
		newQty := bal.Quantity.Add(deltas[key])
		if newQty.IsNegative() {
			shortfalls = append(shortfalls, domain.Shortfall{
				ItemID:    key.itemID,
				Available: bal.Quantity,
				Required:  deltas[key].Neg(),
			})
			continue
		}
		bal.Quantity = newQty
		bal.UpdatedAt = now
		balances[key] = bal
	}
	if len(shortfalls) > 0 {
		return nil, &domain.InsufficientStockError{Shortfalls: shortfalls}
	}

	for _, key := range keys {
		if err := stockRepo.Upsert(balances[key]); err != nil {
			return nil, err
		}
	}

	// Números asignados dentro de la tx: un rollback los devuelve, así los
	// lotes confirmados quedan consecutivos sin huecos.
	committed := make([]*entity.StockMovement, 0, len(drafts))
	for _, d := range drafts {
		n, err := counterRepo.Next(CounterStockMovement)
		if err != nil {
			return nil, err
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			Number:      MovementNumber(n),
			ItemID:      d.ItemID,
			WarehouseID: d.WarehouseID,
			Type:        d.Type,
			Quantity:    d.Quantity,
			Reference:   d.Reference,
			Remarks:     d.Remarks,
			Date:        d.Date,
			CreatedAt:   now,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, err
		}
		committed = append(committed, mov)
	}
	return committed, nil
}

// LedgerUseCase expone el libro de inventario: confirmación atómica de lotes
// y el punto de entrada RegisterMovement para los flujos de compra/venta/ajuste.
type LedgerUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, warehouseRepo repository.WarehouseRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, itemRepo: itemRepo, warehouseRepo: warehouseRepo}
}

// AppendMovements confirma un lote como unidad atómica: o todos los
// movimientos quedan registrados con su saldo actualizado, o ninguno.
func (uc *LedgerUseCase) AppendMovements(ctx context.Context, drafts []MovementDraft) ([]*entity.StockMovement, error) {
	var committed []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		counterRepo repository.CounterRepository,
		_ repository.ProductionRepository,
	) error {
		var err error
		committed, err = AppendInTx(movRepo, stockRepo, counterRepo, drafts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}
