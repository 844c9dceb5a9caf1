package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// Tipos permitidos: PURCHASE, SALE, ADJUSTMENT (los PRODUCTION_* solo los
// escribe el motor de producción).
type RegisterMovementRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Type        string          `json:"type" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference,omitempty"`
	Remarks     string          `json:"remarks,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// MovementResponse un movimiento del libro de inventario.
type MovementResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference,omitempty"`
	Remarks     string          `json:"remarks,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockBalanceResponse saldo actual de un ítem en una bodega.
type StockBalanceResponse struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// ItemBalancesResponse desglose por bodega y total de un ítem.
type ItemBalancesResponse struct {
	ItemID     string                 `json:"item_id"`
	Total      decimal.Decimal        `json:"total"`
	Warehouses []StockBalanceResponse `json:"warehouses"`
}
