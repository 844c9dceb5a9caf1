package bom_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/bom"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testBOM() *entity.BOM {
	// Receta de lote: 5 unidades de salida consumen 10 de harina y 2.5 de azúcar.
	return &entity.BOM{
		ID:             "bom-1",
		OutputItemID:   "item-out",
		OutputQuantity: dec("5"),
		Active:         true,
		Lines: []entity.BOMLine{
			{LineNo: 1, ItemID: "item-harina", Quantity: dec("10")},
			{LineNo: 2, ItemID: "item-azucar", Quantity: dec("2.5")},
		},
	}
}

func TestExplode_EscalaPorFactorDeLote(t *testing.T) {
	// Producir 12.5 con lote de 5 => factor 2.5
	reqs, err := bom.Explode(testBOM(), dec("12.5"))
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, "item-harina", reqs[0].ItemID)
	assert.True(t, reqs[0].Quantity.Equal(dec("25")), "10 * 2.5 = 25, got %s", reqs[0].Quantity)
	assert.Equal(t, "item-azucar", reqs[1].ItemID)
	assert.True(t, reqs[1].Quantity.Equal(dec("6.25")), "2.5 * 2.5 = 6.25, got %s", reqs[1].Quantity)
}

func TestExplode_CantidadFraccionariaSinPerdida(t *testing.T) {
	b := testBOM()
	b.OutputQuantity = dec("3")
	b.Lines = []entity.BOMLine{{LineNo: 1, ItemID: "item-x", Quantity: dec("1")}}

	// 1/3 no es representable en binario; decimal mantiene la división exacta
	// dentro de la precisión configurada.
	reqs, err := bom.Explode(b, dec("1"))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Quantity.Mul(dec("3")).Round(10).Equal(dec("1")),
		"la cantidad escalada por el lote debe recuperar la solicitada")
}

func TestExplode_CantidadInvalida(t *testing.T) {
	for _, qty := range []string{"0", "-1"} {
		_, err := bom.Explode(testBOM(), dec(qty))
		assert.True(t, errors.Is(err, domain.ErrInvalidQuantity), "cantidad %s debe rechazarse", qty)
	}
}

func TestExplode_LoteInvalido(t *testing.T) {
	b := testBOM()
	b.OutputQuantity = decimal.Zero
	_, err := bom.Explode(b, dec("1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
}

func TestExplode_RecetaSinLineas(t *testing.T) {
	b := testBOM()
	b.Lines = nil
	_, err := bom.Explode(b, dec("1"))
	assert.True(t, errors.Is(err, domain.ErrEmptyRecipe))
}

func TestExplode_PreservaOrdenDeLineas(t *testing.T) {
	b := testBOM()
	b.Lines = []entity.BOMLine{
		{LineNo: 1, ItemID: "c", Quantity: dec("1")},
		{LineNo: 2, ItemID: "a", Quantity: dec("1")},
		{LineNo: 3, ItemID: "b", Quantity: dec("1")},
	}
	reqs, err := bom.Explode(b, dec("5"))
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, "c", reqs[0].ItemID)
	assert.Equal(t, "a", reqs[1].ItemID)
	assert.Equal(t, "b", reqs[2].ItemID)
}
