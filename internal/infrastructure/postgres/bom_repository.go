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

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación del puerto BOMRepository sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de persistencia para recetas.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

const bomColumns = `id, number, name, output_item_id, output_quantity, active, description, created_at, updated_at`

// Create persiste la cabecera y las líneas de una receta.
// Falla con ErrDuplicate si el número ya existe.
func (r *BOMRepo) Create(bom *entity.BOM) error {
	header := `
		INSERT INTO boms (` + bomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), header,
		bom.ID, bom.Number, bom.Name, bom.OutputItemID, bom.OutputQuantity,
		bom.Active, bom.Description, bom.CreatedAt, bom.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bom: %w", err)
	}
	line := `
		INSERT INTO bom_lines (id, bom_id, line_no, item_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for _, l := range bom.Lines {
		if _, err := r.q.Exec(context.Background(), line, l.ID, bom.ID, l.LineNo, l.ItemID, l.Quantity); err != nil {
			return fmt.Errorf("insert bom line %d: %w", l.LineNo, err)
		}
	}
	return nil
}

// GetByID obtiene una receta con sus líneas ordenadas por line_no.
func (r *BOMRepo) GetByID(id string) (*entity.BOM, error) {
	query := `SELECT ` + bomColumns + ` FROM boms WHERE id = $1`
	return r.getOne(query, id)
}

// GetByNumber obtiene una receta por su número único.
func (r *BOMRepo) GetByNumber(number string) (*entity.BOM, error) {
	query := `SELECT ` + bomColumns + ` FROM boms WHERE number = $1`
	return r.getOne(query, number)
}

// List lista recetas (cabeceras con líneas) ordenadas por número.
func (r *BOMRepo) List(activeOnly bool, limit, offset int) ([]*entity.BOM, error) {
	query := `SELECT ` + bomColumns + ` FROM boms`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY number LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOM
	for rows.Next() {
		var b entity.BOM
		if err := rows.Scan(
			&b.ID, &b.Number, &b.Name, &b.OutputItemID, &b.OutputQuantity,
			&b.Active, &b.Description, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, b := range list {
		lines, err := r.loadLines(b.ID)
		if err != nil {
			return nil, err
		}
		b.Lines = lines
	}
	return list, nil
}

// SetActive activa o desactiva una receta. ErrNotFound si no existe.
func (r *BOMRepo) SetActive(id string, active bool) error {
	query := `UPDATE boms SET active = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, active)
	if err != nil {
		return fmt.Errorf("set bom active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BOMRepo) getOne(query, arg string) (*entity.BOM, error) {
	var b entity.BOM
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&b.ID, &b.Number, &b.Name, &b.OutputItemID, &b.OutputQuantity,
		&b.Active, &b.Description, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	lines, err := r.loadLines(b.ID)
	if err != nil {
		return nil, err
	}
	b.Lines = lines
	return &b, nil
}

func (r *BOMRepo) loadLines(bomID string) ([]entity.BOMLine, error) {
	query := `
		SELECT id, bom_id, line_no, item_id, quantity
		FROM bom_lines WHERE bom_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.ID, &l.BOMID, &l.LineNo, &l.ItemID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
