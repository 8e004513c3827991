package services

import (
	"context"
	"fmt"
	"io"

	"github.com/enunezf/studentdb/internal/core/domain"
	"github.com/enunezf/studentdb/internal/core/ports"
	"github.com/enunezf/studentdb/internal/logger"
)

// Listing prints the student count and table without changing anything
type Listing struct {
	session
}

// NewListing creates the read-only listing workflow
func NewListing(db ports.DatabasePort, out io.Writer) *Listing {
	return &Listing{session: newSession(db, out)}
}

// Run connects, prints the table and closes. The transaction is always
// rolled back, including the table creation on a fresh database.
func (l *Listing) Run(ctx context.Context) error {
	if err := l.connect(ctx); err != nil {
		return err
	}
	defer l.close()

	if err := l.verify(ctx); err != nil {
		return err
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		werr := domain.NewWorkflowError(domain.KindData, "begin transaction", err)
		l.reportError(werr)
		return werr
	}

	if werr := l.list(ctx, tx); werr != nil {
		l.reportError(werr)
		if werr.Kind.NeedsRollback() {
			l.rollback(tx)
		}
		return werr
	}

	if err := tx.Rollback(); err != nil {
		logger.Warn().Err(err).Msg("Failed to end read-only transaction")
	}
	return nil
}

func (l *Listing) list(ctx context.Context, tx ports.StudentTx) *domain.WorkflowError {
	if err := tx.EnsureSchema(ctx); err != nil {
		return domain.NewWorkflowError(domain.KindData, "create students table", err)
	}

	count, err := tx.Count(ctx)
	if err != nil {
		return domain.NewWorkflowError(domain.KindData, "count students", err)
	}
	fmt.Fprintf(l.out, "Total students in system: %d\n", count)

	students, err := tx.List(ctx)
	if err != nil {
		return domain.NewWorkflowError(domain.KindData, "list students", err)
	}
	fmt.Fprintln(l.out, "\nStudent List:")
	if err := RenderStudents(l.out, students); err != nil {
		return domain.NewWorkflowError(domain.KindData, "render students", err)
	}
	return nil
}
