package repository

import "github.com/mfbgull/mini-erp-sub001/internal/domain/entity"

// BOMRepository define el puerto de persistencia para recetas (BOM).
// GetByID devuelve la cabecera con sus líneas ordenadas por line_no.
type BOMRepository interface {
	Create(bom *entity.BOM) error
	GetByID(id string) (*entity.BOM, error)
	GetByNumber(number string) (*entity.BOM, error)
	List(activeOnly bool, limit, offset int) ([]*entity.BOM, error)
	// SetActive activa/desactiva una receta (soft; no hay borrado físico).
	SetActive(id string, active bool) error
}
