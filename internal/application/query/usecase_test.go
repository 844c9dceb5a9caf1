package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/application/query"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
	"github.com/mfbgull/mini-erp-sub001/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	ledgerUC *ledger.LedgerUseCase
	queryUC  *query.QueryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	itemRepo := memory.NewItemRepository(store)
	whRepo := memory.NewWarehouseRepository(store)

	now := time.Now()
	require.NoError(t, itemRepo.Create(&entity.Item{ID: "item-a", Code: "A", Name: "A", UnitMeasure: "UND", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, whRepo.Create(&entity.Warehouse{ID: "wh-1", Code: "B1", Name: "Bodega 1", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, whRepo.Create(&entity.Warehouse{ID: "wh-2", Code: "B2", Name: "Bodega 2", CreatedAt: now, UpdatedAt: now}))

	return &fixture{
		ledgerUC: ledger.NewLedgerUseCase(memory.NewTxRunner(store), itemRepo, whRepo),
		queryUC:  query.NewQueryUseCase(memory.NewStockRepository(store), memory.NewStockMovementRepository(store)),
	}
}

func (f *fixture) register(t *testing.T, warehouseID, typ, qty string) {
	t.Helper()
	_, err := f.ledgerUC.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID:      "item-a",
		WarehouseID: warehouseID,
		Type:        typ,
		Quantity:    dec(qty),
	})
	require.NoError(t, err)
}

func TestGetBalance_SinMovimientosEsCero(t *testing.T) {
	f := newFixture(t)

	out, err := f.queryUC.GetBalance("item-a", "wh-1")
	require.NoError(t, err)
	assert.True(t, out.Quantity.IsZero(), "ausencia de movimientos => saldo cero, no error")
	assert.Nil(t, out.UpdatedAt)
}

func TestGetBalance_LecturaIdempotente(t *testing.T) {
	f := newFixture(t)
	f.register(t, "wh-1", entity.MovementTypePURCHASE, "7")

	first, err := f.queryUC.GetBalance("item-a", "wh-1")
	require.NoError(t, err)
	second, err := f.queryUC.GetBalance("item-a", "wh-1")
	require.NoError(t, err)
	assert.True(t, first.Quantity.Equal(second.Quantity), "consultar no altera el saldo")
	assert.True(t, first.Quantity.Equal(dec("7")))
}

func TestGetItemBalances_DesgloseYTotal(t *testing.T) {
	f := newFixture(t)
	f.register(t, "wh-1", entity.MovementTypePURCHASE, "7")
	f.register(t, "wh-2", entity.MovementTypePURCHASE, "3")
	f.register(t, "wh-1", entity.MovementTypeSALE, "2")

	out, err := f.queryUC.GetItemBalances("item-a")
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(dec("8")), "7 - 2 + 3 = 8")
	require.Len(t, out.Warehouses, 2)

	byWh := map[string]decimal.Decimal{}
	for _, b := range out.Warehouses {
		byWh[b.WarehouseID] = b.Quantity
	}
	assert.True(t, byWh["wh-1"].Equal(dec("5")))
	assert.True(t, byWh["wh-2"].Equal(dec("3")))
}

func TestListMovements_FiltrosYOrden(t *testing.T) {
	f := newFixture(t)
	f.register(t, "wh-1", entity.MovementTypePURCHASE, "5")
	f.register(t, "wh-2", entity.MovementTypePURCHASE, "5")
	f.register(t, "wh-1", entity.MovementTypeSALE, "1")

	// Filtro por bodega.
	out, err := f.queryUC.ListMovements(repository.MovementFilter{ItemID: "item-a", WarehouseID: "wh-1"})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, entity.MovementTypeSALE, out.Items[0].Type, "más reciente primero")

	// Filtro por tipo.
	out, err = f.queryUC.ListMovements(repository.MovementFilter{Type: entity.MovementTypeSALE})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Quantity.Equal(dec("-1")))
}

func TestListMovements_PaginacionPorDefecto(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 25; i++ {
		f.register(t, "wh-1", entity.MovementTypePURCHASE, "1")
	}

	out, err := f.queryUC.ListMovements(repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 20, "límite por defecto 20")
	assert.Equal(t, 20, out.Page.Limit)

	out, err = f.queryUC.ListMovements(repository.MovementFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Page.Limit, "límite máximo 100")
}
