package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfbgull/mini-erp-sub001/internal/application/dto"
	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

// BOMUseCase casos de uso para recetas: creación validada contra el catálogo,
// consulta y desactivación (soft). Una receta nunca se elimina físicamente.
type BOMUseCase struct {
	repo        repository.BOMRepository
	itemRepo    repository.ItemRepository
	counterRepo repository.CounterRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(repo repository.BOMRepository, itemRepo repository.ItemRepository, counterRepo repository.CounterRepository) *BOMUseCase {
	return &BOMUseCase{repo: repo, itemRepo: itemRepo, counterRepo: counterRepo}
}

// Create valida y crea una receta:
//   - el ítem de salida existe y es producible (finished good o manufactured)
//   - la cantidad de salida por lote y todas las líneas son > 0
//   - todos los ítems de línea existen en el catálogo
//   - al menos una línea (una receta sin insumos no puede producir)
func (uc *BOMUseCase) Create(in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	if in.Name == "" || in.OutputItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.OutputQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyRecipe
	}

	output, err := uc.itemRepo.GetByID(in.OutputItemID)
	if err != nil {
		return nil, err
	}
	if output == nil {
		return nil, domain.ErrNotFound
	}
	if !output.Producible() {
		return nil, domain.ErrInvalidInput
	}

	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
	}

	number := in.Number
	if number == "" {
		n, err := uc.counterRepo.Next(ledger.CounterBOM)
		if err != nil {
			return nil, err
		}
		number = ledger.BOMNumber(n)
	}

	now := time.Now()
	b := &entity.BOM{
		ID:             uuid.New().String(),
		Number:         number,
		Name:           in.Name,
		OutputItemID:   in.OutputItemID,
		OutputQuantity: in.OutputQuantity,
		Active:         true,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for i, line := range in.Lines {
		b.Lines = append(b.Lines, entity.BOMLine{
			ID:       uuid.New().String(),
			BOMID:    b.ID,
			LineNo:   i + 1,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	if err := uc.repo.Create(b); err != nil {
		return nil, err
	}
	return toBOMResponse(b), nil
}

// GetByID obtiene una receta con sus líneas. nil si no existe.
func (uc *BOMUseCase) GetByID(id string) (*dto.BOMResponse, error) {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return toBOMResponse(b), nil
}

// List lista recetas; con activeOnly filtra las desactivadas.
func (uc *BOMUseCase) List(activeOnly bool, limit, offset int) (*dto.BOMListResponse, error) {
	list, err := uc.repo.List(activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BOMResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBOMResponse(b))
	}
	return &dto.BOMListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate desactiva una receta (deja de resolverse para producción).
func (uc *BOMUseCase) Deactivate(id string) error {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetActive(id, false)
}

func toBOMResponse(b *entity.BOM) *dto.BOMResponse {
	out := &dto.BOMResponse{
		ID:             b.ID,
		Number:         b.Number,
		Name:           b.Name,
		OutputItemID:   b.OutputItemID,
		OutputQuantity: b.OutputQuantity,
		Active:         b.Active,
		Description:    b.Description,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	for _, line := range b.Lines {
		out.Lines = append(out.Lines, dto.BOMLineResponse{
			LineNo:   line.LineNo,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	return out
}
