package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(q Querier) error) error
}

type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) TxManagerInterface {
	return &TxManager{pool: pool}
}

// RunInTransaction executes fn inside a single transaction. The named return
// lets the deferred block observe errors from fn and decide between commit
// and rollback; panics roll back and are re-raised.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(q Querier) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			// The original error matters more than a rollback failure.
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
			if err != nil {
				err = fmt.Errorf("commit transaction: %w", err)
			}
		}
	}()

	err = fn(tx)
	return err
}
