package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypePURCHASE      = "PURCHASE"       // entrada por compra
	MovementTypeSALE          = "SALE"           // salida por venta
	MovementTypePRODUCTIONIN  = "PRODUCTION_IN"  // entrada de producto terminado
	MovementTypePRODUCTIONOUT = "PRODUCTION_OUT" // consumo de materia prima
	MovementTypeADJUSTMENT    = "ADJUSTMENT"     // ajuste (con signo)
)

// ValidMovementType verifica que el tipo pertenezca al catálogo.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePURCHASE, MovementTypeSALE, MovementTypePRODUCTIONIN,
		MovementTypePRODUCTIONOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// StockMovement es un registro inmutable del libro de inventario (append-only).
// Nunca se edita ni se elimina: las correcciones son nuevos movimientos ADJUSTMENT.
// Number se asigna al confirmar el lote, de forma monotónica y sin huecos
// para lotes confirmados.
type StockMovement struct {
	ID          string
	Number      string // ej. MV-00000042
	ItemID      string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal // positivo entrada, negativo salida
	Reference   string          // id de producción, factura, etc.
	Remarks     string
	Date        time.Time
	CreatedAt   time.Time
}
