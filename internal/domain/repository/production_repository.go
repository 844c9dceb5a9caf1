package repository

import "github.com/mfbgull/mini-erp-sub001/internal/domain/entity"

// ProductionRepository define el puerto de persistencia para cabeceras de
// producción. Sin Update ni Delete: una producción confirmada es inmutable.
type ProductionRepository interface {
	Create(record *entity.ProductionRecord) error
	GetByID(id string) (*entity.ProductionRecord, error)
	List(limit, offset int) ([]*entity.ProductionRecord, error)
}
