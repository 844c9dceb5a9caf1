package postgres

import (
	"context"
	"fmt"

	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo consecutivos de documentos sobre la tabla document_counters.
// El UPDATE bloquea la fila del contador hasta el fin de la transacción, así
// los números de lotes confirmados quedan monotónicos y sin huecos (un
// rollback devuelve el número).
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve el consecutivo del contador indicado,
// creándolo en 1 si no existe.
func (r *CounterRepo) Next(name string) (int64, error) {
	query := `
		INSERT INTO document_counters (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name)
		DO UPDATE SET value = document_counters.value + 1
		RETURNING value`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("next counter %s: %w", name, err)
	}
	return n, nil
}
