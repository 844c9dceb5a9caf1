package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionRequest body para POST /api/productions.
type CreateProductionRequest struct {
	BOMID               string          `json:"bom_id" validate:"required"`
	Quantity            decimal.Decimal `json:"quantity"`
	RawWarehouseID      string          `json:"raw_warehouse_id" validate:"required"`
	FinishedWarehouseID string          `json:"finished_warehouse_id" validate:"required"`
	Date                *time.Time      `json:"date,omitempty"`
	Remarks             string          `json:"remarks,omitempty"`
}

// ProductionResponse cabecera de producción confirmada con sus movimientos.
type ProductionResponse struct {
	ID                  string             `json:"id"`
	Number              string             `json:"number"`
	BOMID               *string            `json:"bom_id,omitempty"`
	OutputItemID        string             `json:"output_item_id"`
	Quantity            decimal.Decimal    `json:"quantity"`
	RawWarehouseID      string             `json:"raw_warehouse_id"`
	FinishedWarehouseID string             `json:"finished_warehouse_id"`
	Date                time.Time          `json:"date"`
	Remarks             string             `json:"remarks,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	Movements           []MovementResponse `json:"movements,omitempty"`
}

// ProductionListResponse lista paginada de producciones.
type ProductionListResponse struct {
	Items []ProductionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
