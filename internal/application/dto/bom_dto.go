package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMLineRequest una línea de insumo al crear una receta.
type BOMLineRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateBOMRequest entrada para crear una receta. Si Number viene vacío se
// asigna un consecutivo BOM-NNNNNN.
type CreateBOMRequest struct {
	Number         string           `json:"number,omitempty"`
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	OutputItemID   string           `json:"output_item_id" validate:"required"`
	OutputQuantity decimal.Decimal  `json:"output_quantity"`
	Description    string           `json:"description"`
	Lines          []BOMLineRequest `json:"lines" validate:"required,min=1"`
}

// BOMLineResponse una línea de insumo de la receta.
type BOMLineResponse struct {
	LineNo   int             `json:"line_no"`
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// BOMResponse salida de una receta con sus líneas ordenadas.
type BOMResponse struct {
	ID             string            `json:"id"`
	Number         string            `json:"number"`
	Name           string            `json:"name"`
	OutputItemID   string            `json:"output_item_id"`
	OutputQuantity decimal.Decimal   `json:"output_quantity"`
	Active         bool              `json:"active"`
	Description    string            `json:"description"`
	Lines          []BOMLineResponse `json:"lines"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// BOMListResponse lista paginada de recetas.
type BOMListResponse struct {
	Items []BOMResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
