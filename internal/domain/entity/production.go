package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionRecord es la cabecera de una producción confirmada: conversión
// atómica de insumos en producto terminado según una receta. Se crea junto
// con sus movimientos en una sola transacción y nunca se edita después.
type ProductionRecord struct {
	ID                  string
	Number              string  // ej. PR-000007
	BOMID               *string // nil para producciones ad-hoc
	OutputItemID        string
	Quantity            decimal.Decimal // cantidad de salida solicitada
	RawWarehouseID      string          // bodega de insumos
	FinishedWarehouseID string          // bodega de producto terminado
	Date                time.Time
	Remarks             string
	CreatedAt           time.Time

	// Movimientos generados por esta producción (un PRODUCTION_OUT por
	// insumo y un PRODUCTION_IN por la salida). Poblado al crear/consultar.
	Movements []*StockMovement
}
