package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOM representa una receta: un ítem de salida con su cantidad "por lote"
// y una o más líneas de insumo. Se desactiva (soft), nunca se elimina
// físicamente una vez referenciada por una producción.
type BOM struct {
	ID             string
	Number         string // número único, ej. BOM-000001
	Name           string
	OutputItemID   string
	OutputQuantity decimal.Decimal // > 0, cantidad producida por lote
	Active         bool
	Description    string
	Lines          []BOMLine // ordenadas por LineNo
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BOMLine es una línea de insumo: ítem consumido y cantidad por lote.
type BOMLine struct {
	ID       string
	BOMID    string
	LineNo   int
	ItemID   string
	Quantity decimal.Decimal // > 0
}
