// Package domain contains the core domain models for studentdb.
package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Supported database drivers
const (
	DriverPostgres  = "postgres"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite"
)

// ConnectionConfig holds the configuration for a database connection
type ConnectionConfig struct {
	Driver         string        // postgres, sqlserver or sqlite
	Host           string        // Server hostname or IP
	Port           int           // Port number
	Database       string        // Database name
	User           string        // Username
	Password       string        // Password
	SSLMode        string        // Postgres sslmode
	TrustServer    bool          // Trust server certificate (sqlserver)
	Path           string        // Database file (sqlite)
	ConnectTimeout time.Duration // Upper bound for connect + ping
	AppName        string        // Application name for connection
}

// NewConnectionConfig creates a new connection config with local development defaults
func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Driver:         DriverPostgres,
		Host:           "localhost",
		Port:           5432,
		Database:       "studentdb",
		User:           "student_user",
		Password:       "student_pass",
		SSLMode:        "disable",
		Path:           "studentdb.sqlite",
		ConnectTimeout: 10 * time.Second,
		AppName:        "studentdb",
	}
}

// DefaultPort returns the conventional port of a network driver
func DefaultPort(driver string) int {
	switch driver {
	case DriverSQLServer:
		return 1433
	case DriverPostgres:
		return 5432
	default:
		return 0
	}
}

// ConnectionString generates the driver specific data source name
func (c *ConnectionConfig) ConnectionString() (string, error) {
	switch c.Driver {
	case DriverPostgres:
		query := url.Values{}
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		query.Add("sslmode", sslMode)
		query.Add("application_name", c.AppName)
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.Host + ":" + strconv.Itoa(c.Port),
			Path:     "/" + c.Database,
			RawQuery: query.Encode(),
		}
		return u.String(), nil

	case DriverSQLServer:
		query := url.Values{}
		query.Add("database", c.Database)
		query.Add("app name", c.AppName)
		if c.TrustServer {
			query.Add("TrustServerCertificate", "true")
		}
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.Host + ":" + strconv.Itoa(c.Port),
			RawQuery: query.Encode(),
		}
		return u.String(), nil

	case DriverSQLite:
		return "file:" + c.Path + "?_pragma=busy_timeout(5000)", nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

// Validate checks if the connection config is valid
func (c *ConnectionConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("path is required for the sqlite driver")
		}
		return nil
	case DriverPostgres, DriverSQLServer:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}

	if c.Host == "" {
		return fmt.Errorf("host is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database is required")
	}

	if c.User == "" {
		return fmt.Errorf("user is required")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	return nil
}

// SafeString returns a description of the target with the password masked
func (c *ConnectionConfig) SafeString() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("Driver=sqlite; Path=%s", c.Path)
	}
	return fmt.Sprintf("Driver=%s; Server=%s:%d; Database=%s; User=%s; Password=***",
		c.Driver, c.Host, c.Port, c.Database, c.User)
}

// ServerInfo holds information about the connected server
type ServerInfo struct {
	Version  string // Engine version string
	Database string // Current database
	User     string // Authenticated user
	Address  string // Server address, empty when not reported
}
