package repository

import (
	"github.com/shopspring/decimal"

	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar saldos por
// ítem+bodega. Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el saldo; ausencia de movimientos => saldo cero, no error.
	Get(itemID, warehouseID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila del saldo (SELECT FOR UPDATE) dentro de
	// la transacción del caller, serializando commits sobre la misma clave.
	GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	// SumByItem suma el saldo de un ítem en todas las bodegas.
	SumByItem(itemID string) (decimal.Decimal, error)
	// ListByItem devuelve el desglose por bodega de un ítem.
	ListByItem(itemID string) ([]*entity.StockBalance, error)
}
