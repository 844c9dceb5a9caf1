package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un ítem en una bodega. Sin fila => saldo cero.
func (r *StockRepo) Get(itemID, warehouseID string) (*entity.StockBalance, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, updated_at
		FROM stock WHERE item_id = $1 AND warehouse_id = $2`
	var s entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE) hasta el
// fin de la transacción: serializa commits concurrentes sobre la misma clave
// (ítem, bodega) sin bloquear el resto del libro.
func (r *StockRepo) GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error) {
	// La fila puede no existir aún; se materializa con saldo cero para que
	// exista algo que bloquear en los commits siguientes.
	insert := `
		INSERT INTO stock (item_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, itemID, warehouseID); err != nil {
		return nil, fmt.Errorf("materialize stock row: %w", err)
	}
	query := `
		SELECT item_id, warehouse_id, quantity, updated_at
		FROM stock WHERE item_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo (por ítem y bodega).
func (r *StockRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock (item_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, balance.ItemID, balance.WarehouseID, balance.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// SumByItem suma el saldo de un ítem en todas las bodegas.
func (r *StockRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE item_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by item: %w", err)
	}
	return total, nil
}

// ListByItem devuelve el desglose por bodega de un ítem.
func (r *StockRepo) ListByItem(itemID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, updated_at
		FROM stock WHERE item_id = $1 ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var s entity.StockBalance
		if err := rows.Scan(&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
