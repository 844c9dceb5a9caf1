package memory

import (
	"sort"
	"time"

	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo repositorio de recetas en memoria.
type BOMRepo struct {
	store  *Store
	locked bool
}

// NewBOMRepository construye el repositorio sobre el almacén.
func NewBOMRepository(store *Store) *BOMRepo {
	return &BOMRepo{store: store}
}

func (r *BOMRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func copyBOM(b *entity.BOM) *entity.BOM {
	cp := *b
	cp.Lines = append([]entity.BOMLine(nil), b.Lines...)
	return &cp
}

func (r *BOMRepo) Create(bom *entity.BOM) error {
	defer r.lock()()
	for _, existing := range r.store.boms {
		if existing.Number == bom.Number {
			return domain.ErrDuplicate
		}
	}
	r.store.boms[bom.ID] = copyBOM(bom)
	return nil
}

func (r *BOMRepo) GetByID(id string) (*entity.BOM, error) {
	defer r.lock()()
	b, ok := r.store.boms[id]
	if !ok {
		return nil, nil
	}
	return copyBOM(b), nil
}

func (r *BOMRepo) GetByNumber(number string) (*entity.BOM, error) {
	defer r.lock()()
	for _, b := range r.store.boms {
		if b.Number == number {
			return copyBOM(b), nil
		}
	}
	return nil, nil
}

func (r *BOMRepo) List(activeOnly bool, limit, offset int) ([]*entity.BOM, error) {
	defer r.lock()()
	var all []*entity.BOM
	for _, b := range r.store.boms {
		if activeOnly && !b.Active {
			continue
		}
		all = append(all, copyBOM(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })
	return page(all, limit, offset), nil
}

func (r *BOMRepo) SetActive(id string, active bool) error {
	defer r.lock()()
	b, ok := r.store.boms[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Active = active
	b.UpdatedAt = time.Now()
	return nil
}
