package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
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
	stock    *memory.StockRepo
	moves    *memory.StockMovementRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	itemRepo := memory.NewItemRepository(store)
	whRepo := memory.NewWarehouseRepository(store)

	now := time.Now()
	for _, it := range []struct{ id, code string }{
		{"item-r1", "R1"}, {"item-r2", "R2"}, {"item-f", "F1"},
	} {
		require.NoError(t, itemRepo.Create(&entity.Item{
			ID: it.id, Code: it.code, Name: it.code,
			UnitMeasure: "UND", IsRawMaterial: true,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	for _, wh := range []struct{ id, code string }{
		{"wh-raw", "MP"}, {"wh-fin", "PT"},
	} {
		require.NoError(t, whRepo.Create(&entity.Warehouse{
			ID: wh.id, Code: wh.code, Name: wh.code,
			CreatedAt: now, UpdatedAt: now,
		}))
	}

	return &fixture{
		store:    store,
		ledgerUC: ledger.NewLedgerUseCase(memory.NewTxRunner(store), itemRepo, whRepo),
		stock:    memory.NewStockRepository(store),
		moves:    memory.NewStockMovementRepository(store),
	}
}

func (f *fixture) balance(t *testing.T, itemID, warehouseID string) decimal.Decimal {
	t.Helper()
	bal, err := f.stock.Get(itemID, warehouseID)
	require.NoError(t, err)
	return bal.Quantity
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

// ──────────────────────────────────────────────────────────────────────────────
// AppendMovements: atomicidad y numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendMovements_LoteAtomico(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "10")

	committed, err := f.ledgerUC.AppendMovements(context.Background(), []ledger.MovementDraft{
		{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-4"), Date: time.Now()},
		{ItemID: "item-r2", WarehouseID: "wh-raw", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("7"), Date: time.Now()},
	})
	require.NoError(t, err)
	require.Len(t, committed, 2)

	assert.True(t, f.balance(t, "item-r1", "wh-raw").Equal(dec("6")))
	assert.True(t, f.balance(t, "item-r2", "wh-raw").Equal(dec("7")))
}

func TestAppendMovements_FallaCompletaSinEfectos(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "10")

	// El segundo draft dejaría a item-r2 negativo: el lote entero se rechaza.
	_, err := f.ledgerUC.AppendMovements(context.Background(), []ledger.MovementDraft{
		{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-4"), Date: time.Now()},
		{ItemID: "item-r2", WarehouseID: "wh-raw", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-1"), Date: time.Now()},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// Saldos intactos y sin movimientos nuevos (solo la compra inicial).
	assert.True(t, f.balance(t, "item-r1", "wh-raw").Equal(dec("10")))
	assert.True(t, f.balance(t, "item-r2", "wh-raw").IsZero())
	moves, err := f.moves.List(repository.MovementFilter{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, moves, 1, "el lote rechazado no deja movimientos en el libro")
}

func TestAppendMovements_RecolectaTodosLosFaltantes(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "5")

	_, err := f.ledgerUC.AppendMovements(context.Background(), []ledger.MovementDraft{
		{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-8"), Date: time.Now()},
		{ItemID: "item-r2", WarehouseID: "wh-raw", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-4"), Date: time.Now()},
	})
	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	require.Len(t, insErr.Shortfalls, 2, "debe reportar ambos faltantes, no solo el primero")

	byItem := map[string]domain.Shortfall{}
	for _, s := range insErr.Shortfalls {
		byItem[s.ItemID] = s
	}
	assert.True(t, byItem["item-r1"].Available.Equal(dec("5")))
	assert.True(t, byItem["item-r1"].Required.Equal(dec("8")))
	assert.True(t, byItem["item-r2"].Available.IsZero())
	assert.True(t, byItem["item-r2"].Required.Equal(dec("4")))
}

func TestAppendMovements_NumeracionMonotonicaSinHuecos(t *testing.T) {
	f := newFixture(t)

	var numbers []string
	for i := 0; i < 5; i++ {
		committed, err := f.ledgerUC.AppendMovements(context.Background(), []ledger.MovementDraft{
			{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypePURCHASE, Quantity: dec("1"), Date: time.Now()},
		})
		require.NoError(t, err)
		numbers = append(numbers, committed[0].Number)
	}

	// Un lote rechazado en medio no consume números.
	_, err := f.ledgerUC.AppendMovements(context.Background(), []ledger.MovementDraft{
		{ItemID: "item-r2", WarehouseID: "wh-raw", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-99"), Date: time.Now()},
	})
	require.Error(t, err)

	committed, err := f.ledgerUC.AppendMovements(context.Background(), []ledger.MovementDraft{
		{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypePURCHASE, Quantity: dec("1"), Date: time.Now()},
	})
	require.NoError(t, err)
	numbers = append(numbers, committed[0].Number)

	for i, n := range numbers {
		assert.Equal(t, fmt.Sprintf("MV-%08d", i+1), n, "números consecutivos sin huecos")
	}
}

func TestAppendMovements_LoteVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledgerUC.AppendMovements(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement: reglas de signo por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_CompraSumaVentaResta(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledgerUC.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID: "item-r1", WarehouseID: "wh-raw",
		Type: entity.MovementTypePURCHASE, Quantity: dec("10"),
	})
	require.NoError(t, err)

	mov, err := f.ledgerUC.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID: "item-r1", WarehouseID: "wh-raw",
		Type: entity.MovementTypeSALE, Quantity: dec("3"),
	})
	require.NoError(t, err)
	assert.True(t, mov.Quantity.Equal(dec("-3")), "la venta se almacena con signo negativo")
	assert.True(t, f.balance(t, "item-r1", "wh-raw").Equal(dec("7")))
}

func TestRegisterMovement_VentaSobreSaldoInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "2")

	_, err := f.ledgerUC.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID: "item-r1", WarehouseID: "wh-raw",
		Type: entity.MovementTypeSALE, Quantity: dec("5"),
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, f.balance(t, "item-r1", "wh-raw").Equal(dec("2")), "el saldo no se toca")
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		input ledger.MovementInput
		want  error
	}{
		{"compra negativa", ledger.MovementInput{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypePURCHASE, Quantity: dec("-1")}, domain.ErrInvalidQuantity},
		{"venta cero", ledger.MovementInput{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypeSALE, Quantity: decimal.Zero}, domain.ErrInvalidQuantity},
		{"ajuste cero", ledger.MovementInput{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypeADJUSTMENT, Quantity: decimal.Zero}, domain.ErrInvalidQuantity},
		{"tipo de producción directo", ledger.MovementInput{ItemID: "item-r1", WarehouseID: "wh-raw", Type: entity.MovementTypePRODUCTIONIN, Quantity: dec("1")}, domain.ErrInvalidInput},
		{"tipo desconocido", ledger.MovementInput{ItemID: "item-r1", WarehouseID: "wh-raw", Type: "TRANSFER", Quantity: dec("1")}, domain.ErrInvalidInput},
		{"ítem inexistente", ledger.MovementInput{ItemID: "nope", WarehouseID: "wh-raw", Type: entity.MovementTypePURCHASE, Quantity: dec("1")}, domain.ErrNotFound},
		{"bodega inexistente", ledger.MovementInput{ItemID: "item-r1", WarehouseID: "nope", Type: entity.MovementTypePURCHASE, Quantity: dec("1")}, domain.ErrWarehouseNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledgerUC.RegisterMovement(context.Background(), tc.input)
			assert.True(t, errors.Is(err, tc.want), "esperado %v, recibido %v", tc.want, err)
		})
	}
}

func TestRegisterMovement_AjusteNegativoConSaldo(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "item-r1", "wh-raw", "10")

	mov, err := f.ledgerUC.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID: "item-r1", WarehouseID: "wh-raw",
		Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-10"),
	})
	require.NoError(t, err)
	assert.True(t, mov.Quantity.Equal(dec("-10")))
	assert.True(t, f.balance(t, "item-r1", "wh-raw").IsZero(), "llegar exactamente a cero es válido")
}
