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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, code, name, unit_measure, is_raw_material, is_finished_good, is_purchased, is_manufactured, cost, price, created_at, updated_at`

// Create persiste un nuevo ítem. Falla con ErrDuplicate si el código ya existe.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.UnitMeasure,
		item.IsRawMaterial, item.IsFinishedGood, item.IsPurchased, item.IsManufactured,
		item.Cost, item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetByCode obtiene un ítem por código único.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get item by code")
}

// Update actualiza un ítem existente (el código no se toca).
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, unit_measure = $3, is_raw_material = $4,
			is_finished_good = $5, is_purchased = $6, is_manufactured = $7,
			cost = $8, price = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.UnitMeasure,
		item.IsRawMaterial, item.IsFinishedGood, item.IsPurchased, item.IsManufactured,
		item.Cost, item.Price, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// List lista ítems ordenados por código con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(
			&i.ID, &i.Code, &i.Name, &i.UnitMeasure,
			&i.IsRawMaterial, &i.IsFinishedGood, &i.IsPurchased, &i.IsManufactured,
			&i.Cost, &i.Price, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Delete elimina un ítem. Falla con ErrConflict si está referenciado por
// movimientos o líneas de receta (guard explícito + FK como respaldo).
func (r *ItemRepo) Delete(id string) error {
	var referenced bool
	check := `
		SELECT EXISTS (SELECT 1 FROM stock_movements WHERE item_id = $1)
		    OR EXISTS (SELECT 1 FROM bom_lines WHERE item_id = $1)
		    OR EXISTS (SELECT 1 FROM boms WHERE output_item_id = $1)`
	if err := r.q.QueryRow(context.Background(), check, id).Scan(&referenced); err != nil {
		return fmt.Errorf("check item references: %w", err)
	}
	if referenced {
		return domain.ErrConflict
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(
		&i.ID, &i.Code, &i.Name, &i.UnitMeasure,
		&i.IsRawMaterial, &i.IsFinishedGood, &i.IsPurchased, &i.IsManufactured,
		&i.Cost, &i.Price, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}
