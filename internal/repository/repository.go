package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finanzas-app/finanzas-service/internal/service"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx,
// letting every query run either standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides database operations
type Repository struct {
	db  *sql.DB
	dbx DBTX
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, dbx: db}
}

// WithTx runs fn inside a single transaction. Every store call made
// through the repository handed to fn shares that transaction; any
// error from fn rolls the whole batch back.
func (r *Repository) WithTx(ctx context.Context, fn func(service.Store) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txRepo := &Repository{db: r.db, dbx: tx}
	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
