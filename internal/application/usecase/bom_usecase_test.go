package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/application/usecase"
	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newBOMUseCase(t *testing.T) *usecase.BOMUseCase {
	t.Helper()
	store := memory.NewStore()
	itemRepo := memory.NewItemRepository(store)

	now := time.Now()
	require.NoError(t, itemRepo.Create(&entity.Item{ID: "item-raw", Code: "R1", Name: "Materia", UnitMeasure: "KG", IsRawMaterial: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, itemRepo.Create(&entity.Item{ID: "item-fin", Code: "F1", Name: "Terminado", UnitMeasure: "UND", IsFinishedGood: true, CreatedAt: now, UpdatedAt: now}))

	return usecase.NewBOMUseCase(memory.NewBOMRepository(store), itemRepo, memory.NewCounterRepository(store))
}

func validRequest() dto.CreateBOMRequest {
	return dto.CreateBOMRequest{
		Name:           "Receta F1",
		OutputItemID:   "item-fin",
		OutputQuantity: dec("2"),
		Lines:          []dto.BOMLineRequest{{ItemID: "item-raw", Quantity: dec("4")}},
	}
}

func TestCreateBOM_AsignaConsecutivoYLineas(t *testing.T) {
	uc := newBOMUseCase(t)

	out, err := uc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, "BOM-000001", out.Number)
	assert.True(t, out.Active)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, 1, out.Lines[0].LineNo)

	second, err := uc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, "BOM-000002", second.Number)
}

func TestCreateBOM_NumeroExplicitoSeRespeta(t *testing.T) {
	uc := newBOMUseCase(t)

	in := validRequest()
	in.Number = "BOM-CUSTOM"
	out, err := uc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, "BOM-CUSTOM", out.Number)

	// Número duplicado se rechaza.
	_, err = uc.Create(in)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCreateBOM_Validaciones(t *testing.T) {
	uc := newBOMUseCase(t)

	t.Run("salida no producible", func(t *testing.T) {
		in := validRequest()
		in.OutputItemID = "item-raw"
		_, err := uc.Create(in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "una materia prima no puede ser salida de receta")
	})
	t.Run("salida inexistente", func(t *testing.T) {
		in := validRequest()
		in.OutputItemID = "nope"
		_, err := uc.Create(in)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
	t.Run("cantidad de lote cero", func(t *testing.T) {
		in := validRequest()
		in.OutputQuantity = decimal.Zero
		_, err := uc.Create(in)
		assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
	})
	t.Run("sin líneas", func(t *testing.T) {
		in := validRequest()
		in.Lines = nil
		_, err := uc.Create(in)
		assert.True(t, errors.Is(err, domain.ErrEmptyRecipe))
	})
	t.Run("línea con cantidad cero", func(t *testing.T) {
		in := validRequest()
		in.Lines = []dto.BOMLineRequest{{ItemID: "item-raw", Quantity: decimal.Zero}}
		_, err := uc.Create(in)
		assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
	})
	t.Run("línea con ítem inexistente", func(t *testing.T) {
		in := validRequest()
		in.Lines = []dto.BOMLineRequest{{ItemID: "nope", Quantity: dec("1")}}
		_, err := uc.Create(in)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestDeactivateBOM_Soft(t *testing.T) {
	uc := newBOMUseCase(t)

	out, err := uc.Create(validRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(out.ID))

	got, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "la receta desactivada sigue existiendo")
	assert.False(t, got.Active)

	// Los listados con activeOnly la excluyen.
	list, err := uc.List(true, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	assert.True(t, errors.Is(uc.Deactivate("nope"), domain.ErrNotFound))
}
