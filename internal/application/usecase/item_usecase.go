package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para el catálogo de ítems.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un nuevo ítem. El código debe ser único.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Name:           in.Name,
		UnitMeasure:    in.UnitMeasure,
		IsRawMaterial:  in.IsRawMaterial,
		IsFinishedGood: in.IsFinishedGood,
		IsPurchased:    in.IsPurchased,
		IsManufactured: in.IsManufactured,
		Cost:           in.Cost,
		Price:          in.Price,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un ítem por ID. nil si no existe.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// GetByCode obtiene un ítem por código único.
func (uc *ItemUseCase) GetByCode(code string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza nombre, unidad, flags y precios. El código es inmutable.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.UnitMeasure != nil {
		item.UnitMeasure = *in.UnitMeasure
	}
	if in.IsRawMaterial != nil {
		item.IsRawMaterial = *in.IsRawMaterial
	}
	if in.IsFinishedGood != nil {
		item.IsFinishedGood = *in.IsFinishedGood
	}
	if in.IsPurchased != nil {
		item.IsPurchased = *in.IsPurchased
	}
	if in.IsManufactured != nil {
		item.IsManufactured = *in.IsManufactured
	}
	if in.Cost != nil {
		item.Cost = *in.Cost
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista ítems con paginación.
func (uc *ItemUseCase) List(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un ítem. Falla con ErrConflict si está referenciado por
// movimientos o líneas de receta.
func (uc *ItemUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:             i.ID,
		Code:           i.Code,
		Name:           i.Name,
		UnitMeasure:    i.UnitMeasure,
		IsRawMaterial:  i.IsRawMaterial,
		IsFinishedGood: i.IsFinishedGood,
		IsPurchased:    i.IsPurchased,
		IsManufactured: i.IsManufactured,
		Cost:           i.Cost,
		Price:          i.Price,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
