package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donmarco3/Book-Brain/internal/platform/logger"
)

// TxFn is the body of a transaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn in a transaction on db. It commits when fn
// returns nil and rolls back otherwise, returning fn's error unchanged so
// callers can still match its kind. A panic in fn rolls back and is
// re-raised. Begin and commit failures wrap ErrTransactionFailed.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx).With(slog.String("component", "tx"))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("rollback failed", slog.String("error", rbErr.Error()))
			if p == nil && err != nil {
				err = fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
			}
		}
		if p != nil {
			log.Error("rolled back after panic", slog.Any("panic", p))
			// ALLOW-PANIC: re-raising the caller's panic after rollback
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		log.Debug("rolling back", slog.String("error", err.Error()))
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error("commit failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	committed = true
	return nil
}
