package db

import (
	"context"
	"fmt"
	"log/slog"
)

// ExecStatementsInTransaction executes statements atomically where the store
// supports it: a single statement runs directly, several run inside one
// transaction. Errors carry the failing statement.
func ExecStatementsInTransaction(ctx context.Context, store Store, statements []string) error {
	switch len(statements) {
	case 0:
		return fmt.Errorf("statements is empty")
	case 1:
		slog.Debug("Executing...", slog.String("query", statements[0]))
		if _, err := store.ExecContext(ctx, statements[0]); err != nil {
			return fmt.Errorf("failed to execute statement %q: %w", statements[0], err)
		}

		return nil
	default:
		tx, err := store.Begin()
		if err != nil {
			return fmt.Errorf("failed to start tx: %w", err)
		}

		var committed bool
		defer func() {
			if !committed {
				if rollbackErr := tx.Rollback(); rollbackErr != nil {
					slog.Warn("Unable to rollback", slog.Any("err", rollbackErr))
				}
			}
		}()

		for _, statement := range statements {
			slog.Debug("Executing...", slog.String("query", statement))
			if _, err = tx.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("failed to execute statement %q: %w", statement, err)
			}
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit statements: %w", err)
		}

		committed = true
		return nil
	}
}
