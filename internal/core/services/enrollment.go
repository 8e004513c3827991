package services

import (
	"context"
	"fmt"
	"io"

	"github.com/enunezf/studentdb/internal/core/domain"
	"github.com/enunezf/studentdb/internal/core/ports"
	"github.com/enunezf/studentdb/internal/logger"
)

const (
	yearPrompt  = "Enter Year (1/2/3/4): "
	yearWarning = "Invalid year! Please enter a number such as 1, 2, 3, or 4."
)

// Enrollment adds one interactively entered student and reports the table.
// The run is linear: connect, verify, ensure schema, collect input, insert,
// count, list, render, approve, commit, close.
type Enrollment struct {
	session
	input    ports.InputSource
	approver ports.Approver
}

// NewEnrollment creates the enrollment workflow
func NewEnrollment(db ports.DatabasePort, input ports.InputSource, approver ports.Approver, out io.Writer) *Enrollment {
	return &Enrollment{
		session:  newSession(db, out),
		input:    input,
		approver: approver,
	}
}

// Run executes the workflow once. Every failure has already been reported to
// the user when Run returns; the returned *domain.WorkflowError only tells the
// caller what kind of failure stopped the run.
func (e *Enrollment) Run(ctx context.Context) error {
	if err := e.connect(ctx); err != nil {
		return err
	}
	defer e.close()

	if err := e.verify(ctx); err != nil {
		return err
	}

	tx, err := e.db.Begin(ctx)
	if err != nil {
		werr := domain.NewWorkflowError(domain.KindData, "begin transaction", err)
		e.reportError(werr)
		return werr
	}

	if werr := e.enroll(ctx, tx); werr != nil {
		e.reportError(werr)
		if werr.Kind.NeedsRollback() {
			e.rollback(tx)
		}
		return werr
	}
	return nil
}

func (e *Enrollment) enroll(ctx context.Context, tx ports.StudentTx) *domain.WorkflowError {
	if err := tx.EnsureSchema(ctx); err != nil {
		return domain.NewWorkflowError(domain.KindData, "create students table", err)
	}
	fmt.Fprintln(e.out, "Students table is ready.")

	in, err := e.collectInput()
	if err != nil {
		return domain.NewWorkflowError(domain.KindInput, "read student details", err)
	}

	inserted, err := tx.Insert(ctx, in)
	if err != nil {
		return domain.NewWorkflowError(domain.KindData, "insert student", err)
	}
	if inserted {
		e.success.Fprintln(e.out, "New student record inserted successfully.")
	} else {
		e.input.Warn(fmt.Sprintf("Student with roll number %s already exists; record skipped.", in.RollNumber))
	}

	count, err := tx.Count(ctx)
	if err != nil {
		return domain.NewWorkflowError(domain.KindData, "count students", err)
	}
	fmt.Fprintf(e.out, "Total students in system: %d\n", count)

	students, err := tx.List(ctx)
	if err != nil {
		return domain.NewWorkflowError(domain.KindData, "list students", err)
	}
	fmt.Fprintln(e.out, "\nStudent List:")
	if err := RenderStudents(e.out, students); err != nil {
		return domain.NewWorkflowError(domain.KindData, "render students", err)
	}

	approved, err := e.approver.RequestApproval(approvalRequest(in, inserted, count))
	if err != nil {
		return domain.NewWorkflowError(domain.KindInput, "approve commit", err)
	}
	if !approved {
		if err := tx.Rollback(); err != nil {
			return domain.NewWorkflowError(domain.KindData, "discard changes", err)
		}
		fmt.Fprintln(e.out, "Changes discarded. Nothing was committed.")
		return nil
	}

	if err := tx.Commit(); err != nil {
		return domain.NewWorkflowError(domain.KindData, "commit", err)
	}
	e.success.Fprintln(e.out, "Changes committed successfully.")
	logger.Info().Str("roll_number", in.RollNumber).Bool("inserted", inserted).Int("total", count).Msg("Enrollment committed")
	return nil
}

func (e *Enrollment) collectInput() (domain.StudentInput, error) {
	var in domain.StudentInput
	var err error

	fmt.Fprintln(e.out, "\nEnter new student details:")

	if in.RollNumber, err = e.input.Prompt("Enter Roll Number: "); err != nil {
		return in, err
	}
	if in.Name, err = e.input.Prompt("Enter Name: "); err != nil {
		return in, err
	}
	if in.Course, err = e.input.Prompt("Enter Course: "); err != nil {
		return in, err
	}
	if in.Year, err = e.readYear(); err != nil {
		return in, err
	}
	return in, nil
}

// readYear prompts until ParseYear accepts the answer. Only a read error,
// such as a closed input stream, ends the loop early.
func (e *Enrollment) readYear() (int, error) {
	for {
		raw, err := e.input.Prompt(yearPrompt)
		if err != nil {
			return 0, err
		}

		year, err := domain.ParseYear(raw)
		if err == nil {
			return year, nil
		}
		logger.Debug().Err(err).Msg("Rejected year")
		e.input.Warn(yearWarning)
	}
}

func approvalRequest(in domain.StudentInput, inserted bool, total int) ports.ApprovalRequest {
	req := ports.ApprovalRequest{
		Operation: fmt.Sprintf("Insert student %s (%s)", in.RollNumber, in.Name),
	}
	if inserted {
		req.ImpactSummary = fmt.Sprintf("1 new row, %d students in total", total)
	} else {
		req.ImpactSummary = "no new rows, roll number already exists"
	}
	return req
}
