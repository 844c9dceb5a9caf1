package memory

import (
	"sort"

	"github.com/mfbgull/mini-erp-sub001/internal/domain"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo repositorio de ítems en memoria.
type ItemRepo struct {
	store  *Store
	locked bool
}

// NewItemRepository construye el repositorio sobre el almacén.
func NewItemRepository(store *Store) *ItemRepo {
	return &ItemRepo{store: store}
}

func (r *ItemRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *ItemRepo) Create(item *entity.Item) error {
	defer r.lock()()
	for _, existing := range r.store.items {
		if existing.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	defer r.lock()()
	item, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	defer r.lock()()
	for _, item := range r.store.items {
		if item.Code == code {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) Update(item *entity.Item) error {
	defer r.lock()()
	if _, ok := r.store.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	defer r.lock()()
	all := make([]*entity.Item, 0, len(r.store.items))
	for _, item := range r.store.items {
		cp := *item
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return page(all, limit, offset), nil
}

func (r *ItemRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.store.items[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.store.movements {
		if m.ItemID == id {
			return domain.ErrConflict
		}
	}
	for _, b := range r.store.boms {
		if b.OutputItemID == id {
			return domain.ErrConflict
		}
		for _, l := range b.Lines {
			if l.ItemID == id {
				return domain.ErrConflict
			}
		}
	}
	delete(r.store.items, id)
	return nil
}

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo repositorio de bodegas en memoria.
type WarehouseRepo struct {
	store  *Store
	locked bool
}

// NewWarehouseRepository construye el repositorio sobre el almacén.
func NewWarehouseRepository(store *Store) *WarehouseRepo {
	return &WarehouseRepo{store: store}
}

func (r *WarehouseRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	defer r.lock()()
	for _, existing := range r.store.warehouses {
		if existing.Code == warehouse.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *warehouse
	r.store.warehouses[warehouse.ID] = &cp
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	defer r.lock()()
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *WarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	defer r.lock()()
	for _, w := range r.store.warehouses {
		if w.Code == code {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	defer r.lock()()
	if _, ok := r.store.warehouses[warehouse.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *warehouse
	r.store.warehouses[warehouse.ID] = &cp
	return nil
}

func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	defer r.lock()()
	all := make([]*entity.Warehouse, 0, len(r.store.warehouses))
	for _, w := range r.store.warehouses {
		cp := *w
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return page(all, limit, offset), nil
}

func (r *WarehouseRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.store.warehouses[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.store.movements {
		if m.WarehouseID == id {
			return domain.ErrConflict
		}
	}
	delete(r.store.warehouses, id)
	return nil
}

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
