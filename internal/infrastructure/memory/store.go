// Package memory implementa los puertos de persistencia en memoria.
// Se usa en las pruebas de los casos de uso; el comportamiento imita al
// adaptador PostgreSQL: misma semántica de errores y misma atomicidad.
package memory

import (
	"context"
	"sync"

	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/entity"
	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

type balanceKey struct {
	itemID      string
	warehouseID string
}

// Store es el estado compartido de todos los repositorios en memoria.
// Un solo mutex serializa lectores y escritores; las "transacciones" del
// TxRunner toman el lock completo, igual que una tx corta de BD.
type Store struct {
	mu sync.Mutex

	items       map[string]*entity.Item
	warehouses  map[string]*entity.Warehouse
	boms        map[string]*entity.BOM
	balances    map[balanceKey]*entity.StockBalance
	movements   []*entity.StockMovement
	productions []*entity.ProductionRecord
	counters    map[string]int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		items:      make(map[string]*entity.Item),
		warehouses: make(map[string]*entity.Warehouse),
		boms:       make(map[string]*entity.BOM),
		balances:   make(map[balanceKey]*entity.StockBalance),
		counters:   make(map[string]int64),
	}
}

// snapshot copia el estado mutable por las transacciones del libro.
type snapshot struct {
	balances     map[balanceKey]*entity.StockBalance
	nMovements   int
	nProductions int
	counters     map[string]int64
}

func (s *Store) take() snapshot {
	balances := make(map[balanceKey]*entity.StockBalance, len(s.balances))
	for k, v := range s.balances {
		cp := *v
		balances[k] = &cp
	}
	counters := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		counters[k] = v
	}
	return snapshot{
		balances:     balances,
		nMovements:   len(s.movements),
		nProductions: len(s.productions),
		counters:     counters,
	}
}

func (s *Store) restore(snap snapshot) {
	s.balances = snap.balances
	s.movements = s.movements[:snap.nMovements]
	s.productions = s.productions[:snap.nProductions]
	s.counters = snap.counters
}

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback bajo el lock del almacén y revierte el estado
// si el callback falla. Equivalente en memoria al Begin/Commit/Rollback del
// adaptador PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios "atados a la tx" (locked=true: no vuelven a
// tomar el lock). Error de fn => rollback al snapshot.
func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	counterRepo repository.CounterRepository,
	productionRepo repository.ProductionRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.take()
	err := fn(
		&StockMovementRepo{store: r.store, locked: true},
		&StockRepo{store: r.store, locked: true},
		&CounterRepo{store: r.store, locked: true},
		&ProductionRepo{store: r.store, locked: true},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
