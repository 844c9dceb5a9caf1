package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo repositorio de saldos en memoria.
type StockRepo struct {
	store  *Store
	locked bool
}

// NewStockRepository construye el repositorio sobre el almacén.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

func (r *StockRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *StockRepo) Get(itemID, warehouseID string) (*entity.StockBalance, error) {
	defer r.lock()()
	return r.get(itemID, warehouseID), nil
}

// GetForUpdate en memoria equivale a Get: el lock del TxRunner ya serializa
// las transacciones completas.
func (r *StockRepo) GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error) {
	defer r.lock()()
	return r.get(itemID, warehouseID), nil
}

func (r *StockRepo) get(itemID, warehouseID string) *entity.StockBalance {
	if bal, ok := r.store.balances[balanceKey{itemID, warehouseID}]; ok {
		cp := *bal
		return &cp
	}
	return &entity.StockBalance{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}
}

func (r *StockRepo) Upsert(balance *entity.StockBalance) error {
	defer r.lock()()
	cp := *balance
	cp.UpdatedAt = time.Now()
	r.store.balances[balanceKey{balance.ItemID, balance.WarehouseID}] = &cp
	return nil
}

func (r *StockRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	defer r.lock()()
	total := decimal.Zero
	for key, bal := range r.store.balances {
		if key.itemID == itemID {
			total = total.Add(bal.Quantity)
		}
	}
	return total, nil
}

func (r *StockRepo) ListByItem(itemID string) ([]*entity.StockBalance, error) {
	defer r.lock()()
	var list []*entity.StockBalance
	for key, bal := range r.store.balances {
		if key.itemID == itemID {
			cp := *bal
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WarehouseID < list[j].WarehouseID })
	return list, nil
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria (append-only).
type StockMovementRepo struct {
	store  *Store
	locked bool
}

// NewStockMovementRepository construye el repositorio sobre el almacén.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{store: store}
}

func (r *StockMovementRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	defer r.lock()()
	cp := *movement
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	defer r.lock()()
	for _, m := range r.store.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var matched []*entity.StockMovement
	// Recorre de atrás hacia adelante: más reciente primero.
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.WarehouseID != "" && m.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Date.After(*filter.To) {
			continue
		}
		cp := *m
		matched = append(matched, &cp)
	}
	return page(matched, filter.Limit, filter.Offset), nil
}

func (r *StockMovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.Reference == reference {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo consecutivos de documentos en memoria. El rollback del TxRunner
// restaura el valor, igual que en la tabla document_counters.
type CounterRepo struct {
	store  *Store
	locked bool
}

// NewCounterRepository construye el repositorio sobre el almacén.
func NewCounterRepository(store *Store) *CounterRepo {
	return &CounterRepo{store: store}
}

func (r *CounterRepo) Next(name string) (int64, error) {
	if !r.locked {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	r.store.counters[name]++
	return r.store.counters[name], nil
}

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo cabeceras de producción en memoria.
type ProductionRepo struct {
	store  *Store
	locked bool
}

// NewProductionRepository construye el repositorio sobre el almacén.
func NewProductionRepository(store *Store) *ProductionRepo {
	return &ProductionRepo{store: store}
}

func (r *ProductionRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *ProductionRepo) Create(record *entity.ProductionRecord) error {
	defer r.lock()()
	cp := *record
	cp.Movements = nil
	r.store.productions = append(r.store.productions, &cp)
	return nil
}

func (r *ProductionRepo) GetByID(id string) (*entity.ProductionRecord, error) {
	defer r.lock()()
	for _, p := range r.store.productions {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductionRepo) List(limit, offset int) ([]*entity.ProductionRecord, error) {
	defer r.lock()()
	var list []*entity.ProductionRecord
	for i := len(r.store.productions) - 1; i >= 0; i-- {
		cp := *r.store.productions[i]
		list = append(list, &cp)
	}
	return page(list, limit, offset), nil
}
