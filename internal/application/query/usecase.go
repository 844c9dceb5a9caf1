// Package query expone las proyecciones de solo lectura sobre el libro de
// inventario: saldos por ítem/bodega y historial de movimientos. Sin acceso
// de escritura. Lee el mismo almacén que escribe el commit, así refleja todo
// lote confirmado antes de responder (consistencia read-after-write).
package query

import (
	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

// QueryUseCase servicio de consulta de saldos y movimientos.
type QueryUseCase struct {
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
}

// NewQueryUseCase construye el servicio de consulta.
func NewQueryUseCase(stockRepo repository.StockRepository, movementRepo repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movementRepo: movementRepo}
}

// GetBalance devuelve el saldo actual de un ítem en una bodega.
// Ausencia de movimientos => saldo cero, no error.
func (uc *QueryUseCase) GetBalance(itemID, warehouseID string) (*dto.StockBalanceResponse, error) {
	bal, err := uc.stockRepo.Get(itemID, warehouseID)
	if err != nil {
		return nil, err
	}
	out := &dto.StockBalanceResponse{
		ItemID:      bal.ItemID,
		WarehouseID: bal.WarehouseID,
		Quantity:    bal.Quantity,
	}
	if !bal.UpdatedAt.IsZero() {
		t := bal.UpdatedAt
		out.UpdatedAt = &t
	}
	return out, nil
}

// GetItemBalances devuelve el desglose por bodega y el total de un ítem.
func (uc *QueryUseCase) GetItemBalances(itemID string) (*dto.ItemBalancesResponse, error) {
	balances, err := uc.stockRepo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	total, err := uc.stockRepo.SumByItem(itemID)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemBalancesResponse{
		ItemID:     itemID,
		Total:      total,
		Warehouses: make([]dto.StockBalanceResponse, 0, len(balances)),
	}
	for _, bal := range balances {
		t := bal.UpdatedAt
		out.Warehouses = append(out.Warehouses, dto.StockBalanceResponse{
			ItemID:      bal.ItemID,
			WarehouseID: bal.WarehouseID,
			Quantity:    bal.Quantity,
			UpdatedAt:   &t,
		})
	}
	return out, nil
}

// ListMovements devuelve el historial paginado según filtros de
// ítem/bodega/tipo/rango de fechas, del más reciente al más antiguo.
func (uc *QueryUseCase) ListMovements(filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	movements, err := uc.movementRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(movements)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	for _, m := range movements {
		out.Items = append(out.Items, ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse mapea un movimiento de entidad a DTO.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Number:      m.Number,
		ItemID:      m.ItemID,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reference:   m.Reference,
		Remarks:     m.Remarks,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
	}
}
