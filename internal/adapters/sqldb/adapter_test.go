package sqldb

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/enunezf/studentdb/internal/core/domain"
	"github.com/enunezf/studentdb/internal/core/ports"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	cfg := domain.NewConnectionConfig()
	cfg.Driver = domain.DriverSQLite
	cfg.Path = filepath.Join(t.TempDir(), "students.sqlite")

	adapter, err := NewAdapter(cfg)
	if err != nil {
		t.Fatalf("Failed to create adapter: %v", err)
	}
	if err := adapter.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func beginWithSchema(t *testing.T, adapter *Adapter) ports.StudentTx {
	t.Helper()
	ctx := context.Background()
	tx, err := adapter.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin: %v", err)
	}
	if err := tx.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return tx
}

func TestNewAdapterUnknownDriver(t *testing.T) {
	cfg := domain.NewConnectionConfig()
	cfg.Driver = "oracle"

	if _, err := NewAdapter(cfg); !errors.Is(err, domain.ErrUnknownDriver) {
		t.Errorf("Expected ErrUnknownDriver, got %v", err)
	}
}

func TestOperationsRequireConnection(t *testing.T) {
	cfg := domain.NewConnectionConfig()
	cfg.Driver = domain.DriverSQLite
	adapter, err := NewAdapter(cfg)
	if err != nil {
		t.Fatalf("Failed to create adapter: %v", err)
	}
	ctx := context.Background()

	if err := adapter.Verify(ctx); !errors.Is(err, domain.ErrNotConnected) {
		t.Errorf("Verify: expected ErrNotConnected, got %v", err)
	}
	if _, err := adapter.Begin(ctx); !errors.Is(err, domain.ErrNotConnected) {
		t.Errorf("Begin: expected ErrNotConnected, got %v", err)
	}
	if _, err := adapter.ServerInfo(ctx); !errors.Is(err, domain.ErrNotConnected) {
		t.Errorf("ServerInfo: expected ErrNotConnected, got %v", err)
	}
	if err := adapter.Close(); err != nil {
		t.Errorf("Close on an unopened adapter should be a no-op, got %v", err)
	}
}

func TestConnectRejectsInvalidConfig(t *testing.T) {
	cfg := domain.NewConnectionConfig()
	cfg.Driver = domain.DriverSQLite
	cfg.Path = ""
	adapter, err := NewAdapter(cfg)
	if err != nil {
		t.Fatalf("Failed to create adapter: %v", err)
	}

	if err := adapter.Connect(context.Background()); err == nil {
		t.Error("Expected an error for a missing sqlite path")
	}
}

func TestVerifyAndServerInfo(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	if err := adapter.Verify(ctx); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	info, err := adapter.ServerInfo(ctx)
	if err != nil {
		t.Fatalf("ServerInfo failed: %v", err)
	}
	if !strings.HasPrefix(info.Version, "SQLite ") {
		t.Errorf("Unexpected version %q", info.Version)
	}
	if info.Database != "main" {
		t.Errorf("Unexpected database %q", info.Database)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	adapter := newTestAdapter(t)

	if err := adapter.Close(); err != nil {
		t.Fatalf("First close failed: %v", err)
	}
	if err := adapter.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}
	if err := adapter.Verify(context.Background()); !errors.Is(err, domain.ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected after close, got %v", err)
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	adapter := newTestAdapter(t)
	tx := beginWithSchema(t, adapter)
	defer tx.Rollback()

	for i := 0; i < 3; i++ {
		if err := tx.EnsureSchema(context.Background()); err != nil {
			t.Fatalf("EnsureSchema call %d failed: %v", i, err)
		}
	}
}

func TestInsertCountAndList(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	tx := beginWithSchema(t, adapter)
	defer tx.Rollback()

	inserted, err := tx.Insert(ctx, domain.StudentInput{RollNumber: "CS101", Name: "Alice", Course: "Computer Science", Year: 2})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !inserted {
		t.Error("Expected the first insert to add a row")
	}

	count, err := tx.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}

	students, err := tx.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("Expected 1 student, got %d", len(students))
	}
	got := strings.Join(students[0].Cells(), " | ")
	if got != "1 | CS101 | Alice | Computer Science | 2" {
		t.Errorf("Unexpected row %q", got)
	}
}

func TestInsertSkipsDuplicateRollNumber(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	tx := beginWithSchema(t, adapter)
	defer tx.Rollback()

	if _, err := tx.Insert(ctx, domain.StudentInput{RollNumber: "CS101", Name: "Alice", Course: "CS", Year: 2}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	inserted, err := tx.Insert(ctx, domain.StudentInput{RollNumber: "CS101", Name: "Bob", Course: "History", Year: 4})
	if err != nil {
		t.Fatalf("Duplicate insert should not fail: %v", err)
	}
	if inserted {
		t.Error("Duplicate insert should report no new row")
	}

	students, err := tx.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(students) != 1 || students[0].Name != "Alice" {
		t.Errorf("Original row should be unchanged, got %+v", students)
	}
}

func TestListOrderedByID(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	tx := beginWithSchema(t, adapter)
	defer tx.Rollback()

	rolls := []string{"Z9", "A1", "M5", "B2"}
	for _, roll := range rolls {
		if _, err := tx.Insert(ctx, domain.StudentInput{RollNumber: roll, Name: "n", Year: 1}); err != nil {
			t.Fatalf("Insert %s failed: %v", roll, err)
		}
	}

	students, err := tx.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(students) != len(rolls) {
		t.Fatalf("Expected %d students, got %d", len(rolls), len(students))
	}
	for i, s := range students {
		if s.RollNumber != rolls[i] {
			t.Errorf("Position %d: expected %s, got %s", i, rolls[i], s.RollNumber)
		}
		if i > 0 && s.ID <= students[i-1].ID {
			t.Errorf("IDs not ascending at %d: %d after %d", i, s.ID, students[i-1].ID)
		}
	}
}

func TestRollbackDiscardsInsert(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	seed := beginWithSchema(t, adapter)
	if _, err := seed.Insert(ctx, domain.StudentInput{RollNumber: "CS101", Name: "Alice", Year: 1}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := seed.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	tx := beginWithSchema(t, adapter)
	if _, err := tx.Insert(ctx, domain.StudentInput{RollNumber: "CS102", Name: "Bob", Year: 1}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	check := beginWithSchema(t, adapter)
	defer check.Rollback()
	count, err := check.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected only the committed row, got %d", count)
	}
}

func TestNullColumnsScan(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	tx := beginWithSchema(t, adapter)
	defer tx.Rollback()

	// Other clients may leave the optional columns NULL. The transaction holds
	// the only connection, so write through it.
	st := tx.(*studentTx)
	if _, err := st.tx.ExecContext(ctx, "INSERT INTO students (roll_number, name) VALUES ('N1', 'Null')"); err != nil {
		t.Fatalf("Raw insert failed: %v", err)
	}

	students, err := tx.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(students) != 1 || students[0].Course.Valid || students[0].Year.Valid {
		t.Errorf("Expected NULL course and year, got %+v", students)
	}
}

func TestInsertPlaceholdersPerDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   string
		args   int
	}{
		{domain.DriverPostgres, "$4", 4},
		{domain.DriverSQLServer, "@p5", 5},
		{domain.DriverSQLite, "?", 4},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := dialectFor(tt.driver)
			if err != nil {
				t.Fatalf("dialectFor failed: %v", err)
			}

			query := sqlx.Rebind(sqlx.BindType(d.driverName), d.insert)
			if !strings.Contains(query, tt.want) {
				t.Errorf("Rebound insert for %s lacks %q:\n%s", tt.driver, tt.want, query)
			}

			args := d.insertArgs(domain.StudentInput{RollNumber: "R", Name: "N", Course: "C", Year: 1})
			if len(args) != tt.args {
				t.Errorf("Expected %d args, got %d", tt.args, len(args))
			}
		})
	}
}
