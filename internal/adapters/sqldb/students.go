package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/enunezf/studentdb/internal/core/domain"
)

// studentTx implements ports.StudentTx on a sqlx transaction
type studentTx struct {
	tx      *sqlx.Tx
	dialect dialect
}

func (t *studentTx) EnsureSchema(ctx context.Context) error {
	if _, err := t.tx.ExecContext(ctx, t.dialect.createTable); err != nil {
		return fmt.Errorf("failed to create students table: %w", err)
	}
	return nil
}

// Insert skips silently at the database level when the roll number exists;
// the affected row count tells the caller which case happened.
func (t *studentTx) Insert(ctx context.Context, in domain.StudentInput) (bool, error) {
	res, err := t.tx.ExecContext(ctx, t.tx.Rebind(t.dialect.insert), t.dialect.insertArgs(in)...)
	if err != nil {
		return false, fmt.Errorf("failed to insert student %q: %w", in.RollNumber, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (t *studentTx) List(ctx context.Context) ([]domain.Student, error) {
	var students []domain.Student
	if err := t.tx.SelectContext(ctx, &students, listQuery); err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (t *studentTx) Count(ctx context.Context) (int, error) {
	var count int
	if err := t.tx.GetContext(ctx, &count, countQuery); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func (t *studentTx) Commit() error {
	return t.tx.Commit()
}

func (t *studentTx) Rollback() error {
	return t.tx.Rollback()
}
