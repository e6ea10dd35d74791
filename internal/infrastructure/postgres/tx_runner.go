package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecovale/recicla-api/internal/application/stock"
	"github.com/ecovale/recicla-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, com os
// repositórios do ledger atados à tx. O lock_timeout local limita a espera
// pelo lock de linha do material; o estouro vira domain.ErrLockTimeout nos
// repositórios (evita pilhas de transações bloqueadas sob contenção).
type TxRunner struct {
	pool          *pgxpool.Pool
	lockTimeoutMS int
}

// NewTxRunner constrói o runner com o pool e a espera máxima por lock.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMS int) *TxRunner {
	if lockTimeoutMS <= 0 {
		lockTimeoutMS = 3000
	}
	return &TxRunner{pool: pool, lockTimeoutMS: lockTimeoutMS}
}

// Run inicia uma transação, executa fn com repos atados à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	receiptRepo repository.ReceiptRepository,
	shipmentRepo repository.ShipmentRepository,
	orderRepo repository.CollectionOrderRepository,
	locks repository.LockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// SET LOCAL vale só nesta transação. lock_timeout não aceita bind parameter.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMS)); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	materialRepo := NewMaterialRepository(tx)
	receiptRepo := NewReceiptRepository(tx)
	shipmentRepo := NewShipmentRepository(tx)
	orderRepo := NewCollectionOrderRepository(tx)
	locks := NewLockRepository(tx)

	if err := fn(materialRepo, receiptRepo, shipmentRepo, orderRepo, locks); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
