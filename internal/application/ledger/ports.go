package ledger

import (
	"context"

	"github.com/mfbgull/mini-erp-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para los lotes del libro
// de inventario y para el motor de producción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		counterRepo repository.CounterRepository,
		productionRepo repository.ProductionRepository,
	) error) error
}
