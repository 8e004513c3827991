// Package ports defines the interfaces (ports) for the hexagonal architecture.
package ports

import (
	"context"

	"github.com/enunezf/studentdb/internal/core/domain"
)

// DatabasePort defines the interface for the single database connection
// used by a run
type DatabasePort interface {
	// Connect establishes the connection to the database
	Connect(ctx context.Context) error

	// Verify issues a trivial round-trip query and checks the echoed value
	Verify(ctx context.Context) error

	// Close closes the database connection
	Close() error

	// ServerInfo retrieves information about the connected server
	ServerInfo(ctx context.Context) (*domain.ServerInfo, error)

	// Begin starts the transaction all student operations run in
	Begin(ctx context.Context) (StudentTx, error)

	// Target describes the connection target with credentials masked
	Target() string
}

// StudentTx exposes the student table operations inside one transaction
type StudentTx interface {
	// EnsureSchema creates the students table if it does not exist
	EnsureSchema(ctx context.Context) error

	// Insert adds a student, reporting false when the roll number already exists
	Insert(ctx context.Context, in domain.StudentInput) (bool, error)

	// List returns every student ordered by ascending id
	List(ctx context.Context) ([]domain.Student, error)

	// Count returns the number of students
	Count(ctx context.Context) (int, error)

	Commit() error
	Rollback() error
}
