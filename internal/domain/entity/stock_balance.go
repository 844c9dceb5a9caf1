package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance representa el saldo actual de un ítem en una bodega
// (agregado derivado del libro de movimientos, materializado en la tabla stock).
// Invariante: Quantity >= 0 en todo momento.
type StockBalance struct {
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
