package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem del catálogo.
type CreateItemRequest struct {
	Code           string          `json:"code" validate:"required,min=1,max=50"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure    string          `json:"unit_measure"`
	IsRawMaterial  bool            `json:"is_raw_material"`
	IsFinishedGood bool            `json:"is_finished_good"`
	IsPurchased    bool            `json:"is_purchased"`
	IsManufactured bool            `json:"is_manufactured"`
	Cost           decimal.Decimal `json:"cost"`
	Price          decimal.Decimal `json:"price"`
}

// UpdateItemRequest entrada para actualizar un ítem (el código es inmutable).
type UpdateItemRequest struct {
	Name           *string          `json:"name,omitempty"`
	UnitMeasure    *string          `json:"unit_measure,omitempty"`
	IsRawMaterial  *bool            `json:"is_raw_material,omitempty"`
	IsFinishedGood *bool            `json:"is_finished_good,omitempty"`
	IsPurchased    *bool            `json:"is_purchased,omitempty"`
	IsManufactured *bool            `json:"is_manufactured,omitempty"`
	Cost           *decimal.Decimal `json:"cost,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	UnitMeasure    string          `json:"unit_measure"`
	IsRawMaterial  bool            `json:"is_raw_material"`
	IsFinishedGood bool            `json:"is_finished_good"`
	IsPurchased    bool            `json:"is_purchased"`
	IsManufactured bool            `json:"is_manufactured"`
	Cost           decimal.Decimal `json:"cost"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
