package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bilemo-api/internal/platform/logger"
)

// TxFn is a function that executes within a database transaction.
// The transaction is committed if it returns nil and rolled back otherwise.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxBeginner is satisfied by *sql.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// RunInTransaction executes fn inside a transaction started on db.
// A panic inside fn rolls the transaction back and is re-raised.
func RunInTransaction(ctx context.Context, db TxBeginner, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction after panic",
				slog.String("error", rbErr.Error()),
				slog.Any("panic", p))
		}
		// ALLOW-PANIC: propagating caught panic after rollback
		panic(p)
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		log.Debug("rolled back transaction", slog.String("error", err.Error()))
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
