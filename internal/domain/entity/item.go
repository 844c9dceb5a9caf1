package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un SKU del catálogo. La identidad (Code) es inmutable;
// flags y precios son mutables desde la gestión de catálogo.
// Cost es nominal (no se recalcula desde movimientos en este núcleo).
type Item struct {
	ID             string
	Code           string // código único
	Name           string
	UnitMeasure    string
	IsRawMaterial  bool
	IsFinishedGood bool
	IsPurchased    bool
	IsManufactured bool
	Cost           decimal.Decimal
	Price          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Producible indica si el ítem puede ser salida de una receta.
func (i *Item) Producible() bool {
	return i.IsFinishedGood || i.IsManufactured
}
