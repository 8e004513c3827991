// Package services implements the studentdb workflows on top of the ports.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/enunezf/studentdb/internal/core/domain"
	"github.com/enunezf/studentdb/internal/core/ports"
	"github.com/enunezf/studentdb/internal/logger"
)

// session owns the connection lifecycle and the user-facing status output
// shared by the workflows
type session struct {
	db      ports.DatabasePort
	out     io.Writer
	success *color.Color
	failure *color.Color
}

func newSession(db ports.DatabasePort, out io.Writer) session {
	return session{
		db:      db,
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

// connect opens the connection. On failure nothing needs to be closed.
func (s *session) connect(ctx context.Context) error {
	fmt.Fprintf(s.out, "Connecting to %s...\n", s.db.Target())
	logger.Info().Str("target", s.db.Target()).Msg("Connecting")

	if err := s.db.Connect(ctx); err != nil {
		werr := domain.NewWorkflowError(domain.KindConnectivity, "connect", err)
		s.reportError(werr)
		return werr
	}

	s.success.Fprintln(s.out, "Connection established successfully.")
	return nil
}

func (s *session) verify(ctx context.Context) error {
	if err := s.db.Verify(ctx); err != nil {
		s.failure.Fprintln(s.out, "Connection verification FAILED. Exiting program.")
		return domain.NewWorkflowError(domain.KindVerification, "verify connection", err)
	}

	s.success.Fprintln(s.out, "Connection verification successful.")
	return nil
}

// close reports a failure to close but never returns it
func (s *session) close() {
	if err := s.db.Close(); err != nil {
		werr := domain.NewWorkflowError(domain.KindCleanup, "close connection", err)
		logger.Warn().Err(werr).Str("kind", string(werr.Kind)).Msg("Cleanup failed")
		s.failure.Fprintf(s.out, "Error when closing the connection: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Database connection closed.")
}

// rollback discards the transaction after a failed step. A transaction that
// already ended, e.g. by a failed commit, counts as rolled back.
func (s *session) rollback(tx ports.StudentTx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Error().Err(err).Msg("Failed to rollback transaction")
		s.failure.Fprintf(s.out, "Rollback failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Transaction rolled back due to error.")
}

func (s *session) reportError(err error) {
	logger.Debug().Err(err).Str("kind", string(domain.KindOf(err))).Msg("Workflow step failed")
	s.failure.Fprintf(s.out, "An error occurred: %v\n", err)
}
