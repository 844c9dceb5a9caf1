package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL.
// Sin UPDATE ni DELETE: una producción confirmada es inmutable.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionColumns = `id, number, bom_id, output_item_id, quantity, raw_warehouse_id, finished_warehouse_id, date, remarks, created_at`

// Create inserta la cabecera de una producción confirmada.
func (r *ProductionRepo) Create(record *entity.ProductionRecord) error {
	query := `
		INSERT INTO productions (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.Number, record.BOMID, record.OutputItemID, record.Quantity,
		record.RawWarehouseID, record.FinishedWarehouseID, record.Date, record.Remarks,
		record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una producción (sin movimientos; el caso de
// uso los carga por referencia).
func (r *ProductionRepo) GetByID(id string) (*entity.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM productions WHERE id = $1`
	var p entity.ProductionRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Number, &p.BOMID, &p.OutputItemID, &p.Quantity,
		&p.RawWarehouseID, &p.FinishedWarehouseID, &p.Date, &p.Remarks, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production: %w", err)
	}
	return &p, nil
}

// List lista producciones, más reciente primero.
func (r *ProductionRepo) List(limit, offset int) ([]*entity.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM productions ORDER BY number DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionRecord
	for rows.Next() {
		var p entity.ProductionRecord
		if err := rows.Scan(
			&p.ID, &p.Number, &p.BOMID, &p.OutputItemID, &p.Quantity,
			&p.RawWarehouseID, &p.FinishedWarehouseID, &p.Date, &p.Remarks, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
