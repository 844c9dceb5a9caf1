package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/application/production"
	"github.com/mfbgull/mini-erp-sub001/internal/application/usecase"
	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	store    *memory.Store
	ledgerUC *ledger.LedgerUseCase
	prodUC   *production.ProductionUseCase
	stock    *memory.StockRepo
	moves    *memory.StockMovementRepo
	bomID    string
}

// newFixture arma el escenario base: dos materias primas (R1, R2), un producto
// terminado F, dos bodegas (MP insumos, PT terminados) y una receta activa que
// por lote de 2 unidades de F consume 4 de R1 y 2 de R2.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	itemRepo := memory.NewItemRepository(store)
	whRepo := memory.NewWarehouseRepository(store)
	bomRepo := memory.NewBOMRepository(store)
	counterRepo := memory.NewCounterRepository(store)
	stockRepo := memory.NewStockRepository(store)
	movementRepo := memory.NewStockMovementRepository(store)
	productionRepo := memory.NewProductionRepository(store)
	txRunner := memory.NewTxRunner(store)

	now := time.Now()
	require.NoError(t, itemRepo.Create(&entity.Item{ID: "item-r1", Code: "R1", Name: "Materia 1", UnitMeasure: "KG", IsRawMaterial: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, itemRepo.Create(&entity.Item{ID: "item-r2", Code: "R2", Name: "Materia 2", UnitMeasure: "KG", IsRawMaterial: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, itemRepo.Create(&entity.Item{ID: "item-f", Code: "F1", Name: "Terminado", UnitMeasure: "UND", IsFinishedGood: true, IsManufactured: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, whRepo.Create(&entity.Warehouse{ID: "wh-raw", Code: "MP", Name: "Materias primas", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, whRepo.Create(&entity.Warehouse{ID: "wh-fin", Code: "PT", Name: "Producto terminado", CreatedAt: now, UpdatedAt: now}))

	bomUC := usecase.NewBOMUseCase(bomRepo, itemRepo, counterRepo)
	bomResp, err := bomUC.Create(dto.CreateBOMRequest{
		Name:           "Receta F1",
		OutputItemID:   "item-f",
		OutputQuantity: dec("2"),
		Lines: []dto.BOMLineRequest{
			{ItemID: "item-r1", Quantity: dec("4")},
			{ItemID: "item-r2", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)

	return &fixture{
		store:    store,
		ledgerUC: ledger.NewLedgerUseCase(txRunner, itemRepo, whRepo),
		prodUC: production.NewProductionUseCase(
			txRunner, bomRepo, itemRepo, whRepo,
			stockRepo, movementRepo, productionRepo,
		),
		stock: stockRepo,
		moves: movementRepo,
		bomID: bomResp.ID,
	}
}

func (f *fixture) seed(t *testing.T, itemID, warehouseID, qty string) {
	t.Helper()
	_, err := f.ledgerUC.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Type:        entity.MovementTypePURCHASE,
		Quantity:    dec(qty),
	})
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, itemID, warehouseID string) decimal.Decimal {
	t.Helper()
	bal, err := f.stock.Get(itemID, warehouseID)
	require.NoError(t, err)
	return bal.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción exitosa
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduction_ConvierteInsumosEnTerminado(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "10")
	f.seed(t, "item-r2", "wh-raw", "10")

	// Producir 4 unidades con lote de 2 => factor 2: consume 8 de R1 y 4 de R2.
	record, err := f.prodUC.CreateProduction(context.Background(), production.CreateProductionInput{
		BOMID:               f.bomID,
		Quantity:            dec("4"),
		RawWarehouseID:      "wh-raw",
		FinishedWarehouseID: "wh-fin",
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "PR-000001", record.Number)
	assert.True(t, f.balance(t, "item-r1", "wh-raw").Equal(dec("2")), "10 - 8 = 2")
	assert.True(t, f.balance(t, "item-r2", "wh-raw").Equal(dec("6")), "10 - 4 = 6")
	assert.True(t, f.balance(t, "item-f", "wh-fin").Equal(dec("4")))

	// Un PRODUCTION_OUT por insumo más un PRODUCTION_IN por la salida,
	// todos referenciando la producción.
	require.Len(t, record.Movements, 3)
	outs, ins := 0, 0
	for _, m := range record.Movements {
		assert.Equal(t, record.ID, m.Reference)
		switch m.Type {
		case entity.MovementTypePRODUCTIONOUT:
			outs++
			assert.True(t, m.Quantity.IsNegative())
		case entity.MovementTypePRODUCTIONIN:
			ins++
			assert.True(t, m.Quantity.Equal(dec("4")))
		}
	}
	assert.Equal(t, 2, outs)
	assert.Equal(t, 1, ins)
}

func TestCreateProduction_MismaBodegaParaInsumosYSalida(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "4")
	f.seed(t, "item-r2", "wh-raw", "2")

	_, err := f.prodUC.CreateProduction(context.Background(), production.CreateProductionInput{
		BOMID:               f.bomID,
		Quantity:            dec("2"),
		RawWarehouseID:      "wh-raw",
		FinishedWarehouseID: "wh-raw",
	})
	require.NoError(t, err)

	assert.True(t, f.balance(t, "item-r1", "wh-raw").IsZero())
	assert.True(t, f.balance(t, "item-r2", "wh-raw").IsZero())
	assert.True(t, f.balance(t, "item-f", "wh-raw").Equal(dec("2")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Faltantes y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduction_FaltanteReportaTodosLosItems(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "5")
	// R2 sin saldo.

	// Producir 4 requiere 8 de R1 y 4 de R2: ambos cortos.
	_, err := f.prodUC.CreateProduction(context.Background(), production.CreateProductionInput{
		BOMID:               f.bomID,
		Quantity:            dec("4"),
		RawWarehouseID:      "wh-raw",
		FinishedWarehouseID: "wh-fin",
	})
	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	require.Len(t, insErr.Shortfalls, 2)

	byItem := map[string]domain.Shortfall{}
	for _, s := range insErr.Shortfalls {
		byItem[s.ItemID] = s
	}
	assert.Equal(t, "R1", byItem["item-r1"].ItemCode)
	assert.True(t, byItem["item-r1"].Available.Equal(dec("5")))
	assert.True(t, byItem["item-r1"].Required.Equal(dec("8")))
	assert.True(t, byItem["item-r2"].Available.IsZero())
	assert.True(t, byItem["item-r2"].Required.Equal(dec("4")))

	// Nada se movió.
	assert.True(t, f.balance(t, "item-r1", "wh-raw").Equal(dec("5")))
	assert.True(t, f.balance(t, "item-f", "wh-fin").IsZero())
}

func TestCreateProduction_ValidacionesDeEntrada(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "100")
	f.seed(t, "item-r2", "wh-raw", "100")

	base := production.CreateProductionInput{
		BOMID:               f.bomID,
		Quantity:            dec("2"),
		RawWarehouseID:      "wh-raw",
		FinishedWarehouseID: "wh-fin",
	}

	t.Run("bodega de insumos inexistente", func(t *testing.T) {
		in := base
		in.RawWarehouseID = "nope"
		_, err := f.prodUC.CreateProduction(context.Background(), in)
		assert.True(t, errors.Is(err, domain.ErrWarehouseNotFound))
	})
	t.Run("bodega de terminados inexistente", func(t *testing.T) {
		in := base
		in.FinishedWarehouseID = "nope"
		_, err := f.prodUC.CreateProduction(context.Background(), in)
		assert.True(t, errors.Is(err, domain.ErrWarehouseNotFound))
	})
	t.Run("receta inexistente", func(t *testing.T) {
		in := base
		in.BOMID = "nope"
		_, err := f.prodUC.CreateProduction(context.Background(), in)
		assert.True(t, errors.Is(err, domain.ErrBOMNotFound))
	})
	t.Run("cantidad cero", func(t *testing.T) {
		in := base
		in.Quantity = decimal.Zero
		_, err := f.prodUC.CreateProduction(context.Background(), in)
		assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
	})
}

func TestCreateProduction_RecetaDesactivadaNoSeResuelve(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "100")
	f.seed(t, "item-r2", "wh-raw", "100")

	bomRepo := memory.NewBOMRepository(f.store)
	require.NoError(t, bomRepo.SetActive(f.bomID, false))

	_, err := f.prodUC.CreateProduction(context.Background(), production.CreateProductionInput{
		BOMID:               f.bomID,
		Quantity:            dec("2"),
		RawWarehouseID:      "wh-raw",
		FinishedWarehouseID: "wh-fin",
	})
	assert.True(t, errors.Is(err, domain.ErrBOMNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos producciones compiten por el mismo stock
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduction_ConcurrentesNoSobreconsumen(t *testing.T) {
	f := newFixture(t)
	// Stock para una sola de las dos producciones: cada una de 3 unidades
	// requiere 6 de R1 y 3 de R2; hay 10 y 100.
	f.seed(t, "item-r1", "wh-raw", "10")
	f.seed(t, "item-r2", "wh-raw", "100")

	input := production.CreateProductionInput{
		BOMID:               f.bomID,
		Quantity:            dec("3"),
		RawWarehouseID:      "wh-raw",
		FinishedWarehouseID: "wh-fin",
	}

	results := make([]error, 2)
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		i := i
		g.Go(func() error {
			_, err := f.prodUC.CreateProduction(context.Background(), input)
			results[i] = err
			return nil
		})
	}
	require.NoError(t, g.Wait())

	okCount, failCount := 0, 0
	for _, err := range results {
		if err == nil {
			okCount++
			continue
		}
		failCount++
		isShortfall := errors.Is(err, domain.ErrInsufficientStock)
		isConflict := errors.Is(err, domain.ErrConcurrentStockConflict)
		assert.True(t, isShortfall || isConflict, "la perdedora falla por faltante o conflicto, no por otra cosa: %v", err)
	}
	assert.Equal(t, 1, okCount, "exactamente una producción gana")
	assert.Equal(t, 1, failCount)

	// El invariante saldo >= 0 se mantiene y solo se consumió un lote.
	assert.True(t, f.balance(t, "item-r1", "wh-raw").Equal(dec("4")), "10 - 6 = 4")
	assert.True(t, f.balance(t, "item-r2", "wh-raw").Equal(dec("97")))
	assert.True(t, f.balance(t, "item-f", "wh-fin").Equal(dec("3")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta e inmutabilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_PueblaMovimientos(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "10")
	f.seed(t, "item-r2", "wh-raw", "10")

	record, err := f.prodUC.CreateProduction(context.Background(), production.CreateProductionInput{
		BOMID:               f.bomID,
		Quantity:            dec("2"),
		RawWarehouseID:      "wh-raw",
		FinishedWarehouseID: "wh-fin",
	})
	require.NoError(t, err)

	got, err := f.prodUC.GetByID(record.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.Number, got.Number)
	assert.Len(t, got.Movements, 3)

	missing, err := f.prodUC.GetByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDelete_ProduccionConfirmadaEsInmutable(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "10")
	f.seed(t, "item-r2", "wh-raw", "10")

	record, err := f.prodUC.CreateProduction(context.Background(), production.CreateProductionInput{
		BOMID:               f.bomID,
		Quantity:            dec("2"),
		RawWarehouseID:      "wh-raw",
		FinishedWarehouseID: "wh-fin",
	})
	require.NoError(t, err)

	err = f.prodUC.Delete(record.ID)
	assert.True(t, errors.Is(err, domain.ErrProductionCommitted))

	err = f.prodUC.Delete("nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// La cabecera sigue ahí.
	got, err := f.prodUC.GetByID(record.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
