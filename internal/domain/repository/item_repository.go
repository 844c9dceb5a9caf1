package repository

import "github.com/mfbgull/mini-erp-sub001/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	Update(item *entity.Item) error
	List(limit, offset int) ([]*entity.Item, error)
	// Delete falla con domain.ErrConflict si el ítem está referenciado
	// por movimientos o líneas de receta.
	Delete(id string) error
}
