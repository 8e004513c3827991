package sqldb

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/enunezf/studentdb/internal/core/domain"
)

func init() {
	// modernc registers as "sqlite", which older sqlx releases don't know
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// dialect holds the statements that differ between engines. Placeholders are
// written as '?' and rebound for the driver.
type dialect struct {
	driverName  string
	createTable string
	insert      string
	serverInfo  string
}

const (
	verifyQuery = `SELECT 1`

	listQuery = `
		SELECT id, roll_number, name, course, year
		FROM students
		ORDER BY id`

	countQuery = `SELECT COUNT(*) FROM students`
)

var dialects = map[string]dialect{
	domain.DriverPostgres: {
		driverName: "pgx",
		createTable: `
			CREATE TABLE IF NOT EXISTS students (
				id SERIAL PRIMARY KEY,
				roll_number VARCHAR(20) UNIQUE,
				name VARCHAR(100) NOT NULL,
				course VARCHAR(100),
				year INTEGER
			)`,
		insert: `
			INSERT INTO students (roll_number, name, course, year)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (roll_number) DO NOTHING`,
		serverInfo: `
			SELECT
				version(),
				current_database(),
				current_user,
				COALESCE(host(inet_server_addr()), '')`,
	},
	domain.DriverSQLServer: {
		driverName: "sqlserver",
		createTable: `
			IF OBJECT_ID(N'dbo.students', N'U') IS NULL
			CREATE TABLE dbo.students (
				id INT IDENTITY(1,1) PRIMARY KEY,
				roll_number NVARCHAR(20) UNIQUE,
				name NVARCHAR(100) NOT NULL,
				course NVARCHAR(100),
				year INT
			)`,
		// Both placeholders carry the roll number; sqlserver rebinds to @p1..@p5
		insert: `
			INSERT INTO dbo.students (roll_number, name, course, year)
			SELECT ?, ?, ?, ?
			WHERE NOT EXISTS (SELECT 1 FROM dbo.students WHERE roll_number = ?)`,
		serverInfo: `
			SELECT
				@@VERSION,
				DB_NAME(),
				SUSER_SNAME(),
				COALESCE(CAST(SERVERPROPERTY('ServerName') AS NVARCHAR(128)), '')`,
	},
	domain.DriverSQLite: {
		driverName: "sqlite",
		createTable: `
			CREATE TABLE IF NOT EXISTS students (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				roll_number VARCHAR(20) UNIQUE,
				name VARCHAR(100) NOT NULL,
				course VARCHAR(100),
				year INTEGER
			)`,
		insert: `
			INSERT INTO students (roll_number, name, course, year)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (roll_number) DO NOTHING`,
		serverInfo: `
			SELECT
				'SQLite ' || sqlite_version(),
				'main',
				'',
				''`,
	},
}

func dialectFor(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", domain.ErrUnknownDriver, driver)
	}
	return d, nil
}

// insertArgs returns the bind arguments for the dialect's insert statement
func (d dialect) insertArgs(in domain.StudentInput) []any {
	args := []any{in.RollNumber, in.Name, in.Course, in.Year}
	if d.driverName == "sqlserver" {
		args = append(args, in.RollNumber)
	}
	return args
}
