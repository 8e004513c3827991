// Package sqldb provides the database/sql adapter for PostgreSQL, SQL Server
// and SQLite.
package sqldb

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"
	_ "github.com/microsoft/go-mssqldb" // SQL Server driver
	_ "modernc.org/sqlite"              // SQLite driver

	"github.com/enunezf/studentdb/internal/core/domain"
	"github.com/enunezf/studentdb/internal/core/ports"
	"github.com/enunezf/studentdb/internal/logger"
)

// Adapter implements the DatabasePort interface on top of database/sql
type Adapter struct {
	config  *domain.ConnectionConfig
	dialect dialect
	db      *sqlx.DB
}

// NewAdapter creates a new adapter for the configured driver
func NewAdapter(config *domain.ConnectionConfig) (*Adapter, error) {
	d, err := dialectFor(config.Driver)
	if err != nil {
		return nil, err
	}
	return &Adapter{config: config, dialect: d}, nil
}

// Connect opens a single connection to the database and pings it
func (a *Adapter) Connect(ctx context.Context) error {
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	connStr, err := a.config.ConnectionString()
	if err != nil {
		return err
	}

	db, err := sqlx.Open(a.dialect.driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}

	// One client, one transaction
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if a.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.ConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Debug().Str("target", a.config.SafeString()).Msg("Database connection opened")

	a.db = db
	return nil
}

// Verify runs SELECT 1 and checks that 1 comes back
func (a *Adapter) Verify(ctx context.Context) error {
	if a.db == nil {
		return domain.ErrNotConnected
	}

	var result int
	if err := a.db.GetContext(ctx, &result, verifyQuery); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
	if result != 1 {
		return fmt.Errorf("%w: expected 1, got %d", domain.ErrVerificationFailed, result)
	}
	return nil
}

// Close closes the database connection. Calling it twice is a no-op.
func (a *Adapter) Close() error {
	if a.db == nil {
		return nil
	}
	db := a.db
	a.db = nil
	return db.Close()
}

// ServerInfo retrieves information about the connected server
func (a *Adapter) ServerInfo(ctx context.Context) (*domain.ServerInfo, error) {
	if a.db == nil {
		return nil, domain.ErrNotConnected
	}

	info := &domain.ServerInfo{}
	row := a.db.QueryRowContext(ctx, a.dialect.serverInfo)
	if err := row.Scan(&info.Version, &info.Database, &info.User, &info.Address); err != nil {
		return nil, fmt.Errorf("failed to get server info: %w", err)
	}

	return info, nil
}

// Begin starts the transaction the student operations run in
func (a *Adapter) Begin(ctx context.Context) (ports.StudentTx, error) {
	if a.db == nil {
		return nil, domain.ErrNotConnected
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &studentTx{tx: tx, dialect: a.dialect}, nil
}

// Target describes the connection target with the password masked
func (a *Adapter) Target() string {
	return a.config.SafeString()
}
