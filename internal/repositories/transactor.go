package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"dress_rental_backend/pkg/utils"
)

// Transactor runs a function as one logical unit of work.
// Repositories called with the ctx handed to fn take part in the same transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type sqlTransactor struct {
	db *sql.DB
}

// NewSQLTransactor creates a Transactor backed by database/sql transactions.
func NewSQLTransactor(db *sql.DB) Transactor {
	return &sqlTransactor{db: db}
}

// RunInTx commits when fn returns nil and rolls back otherwise.
// A nested call joins the outer transaction.
func (t *sqlTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

// executorFrom returns the transaction bound to ctx, or db outside a transaction.
func executorFrom(ctx context.Context, db *sql.DB) SQLExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type undoKey struct{}

type undoLog struct {
	steps []func(ctx context.Context) error
}

// OnRollback registers step to undo a write already made when the enclosing unit of work
// fails. Stores with real transactions never install an undo log, so there it is a no-op.
func OnRollback(ctx context.Context, step func(ctx context.Context) error) {
	if log, ok := ctx.Value(undoKey{}).(*undoLog); ok {
		log.steps = append(log.steps, step)
	}
}

// RunCompensated runs fn without a transaction. If fn fails, the steps registered with
// OnRollback run in reverse order and fn's error is returned. A nested call joins the outer log.
func RunCompensated(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(undoKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	log := &undoLog{}
	err := fn(context.WithValue(ctx, undoKey{}, log))
	if err == nil {
		return nil
	}

	// Undo must still run when the request was cancelled.
	undoCtx := context.WithoutCancel(ctx)
	for i := len(log.steps) - 1; i >= 0; i-- {
		if undoErr := log.steps[i](undoCtx); undoErr != nil {
			utils.LogError(undoErr, "RunCompensated: undo step failed")
		}
	}
	return err
}
