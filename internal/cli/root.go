// Package cli provides the command-line interface for studentdb.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enunezf/studentdb/internal/adapters/sqldb"
	"github.com/enunezf/studentdb/internal/config"
	"github.com/enunezf/studentdb/internal/core/domain"
	"github.com/enunezf/studentdb/internal/core/ports"
	"github.com/enunezf/studentdb/internal/core/services"
	"github.com/enunezf/studentdb/internal/logger"
	"github.com/enunezf/studentdb/internal/prompt"
)

var (
	// Global flags
	configPath string
	driver     string
	host       string
	port       int
	database   string
	user       string
	password   string
	sslMode    string
	dbPath     string
	trustCert  bool
	logLevel   string

	// Enrollment flags
	dryRun  bool
	confirm bool

	// cfg is loaded before any command runs
	cfg *config.Config

	// Version information
	version = "0.1.0"
)

// rootCmd runs the enrollment workflow
var rootCmd = &cobra.Command{
	Use:   "studentdb",
	Short: "studentdb - add a student and list the students table",
	Long: `studentdb connects to a database, makes sure the students table exists,
asks for one new student and prints every student on record.

The roll number is unique: entering an existing one leaves the table unchanged.

Connection settings come from studentdb.yaml, a .env file, DB_* environment
variables and the flags below, later sources winning.

Examples:
  # Local PostgreSQL with the development defaults
  studentdb

  # Embedded SQLite file
  studentdb --driver sqlite --path ./students.sqlite

  # Review the result before it is committed
  studentdb --confirm`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runEnroll,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	flags.StringVar(&driver, "driver", "", "Database driver: postgres, sqlserver or sqlite")
	flags.StringVarP(&host, "host", "s", "", "Database hostname or IP address")
	flags.IntVar(&port, "port", 0, "Database port (default depends on driver)")
	flags.StringVarP(&database, "database", "d", "", "Database name")
	flags.StringVarP(&user, "user", "u", "", "Username")
	flags.StringVarP(&password, "password", "p", "", "Password")
	flags.StringVar(&sslMode, "sslmode", "", "PostgreSQL sslmode")
	flags.StringVar(&dbPath, "path", "", "Database file for the sqlite driver")
	flags.BoolVar(&trustCert, "trust-cert", false, "Trust server certificate (sqlserver, insecure)")
	flags.StringVar(&logLevel, "log-level", "", "Diagnostic log level: debug, info, warn or error")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the workflow but roll back instead of committing")
	rootCmd.Flags().BoolVar(&confirm, "confirm", false, "Ask before committing the new student")
}

// loadConfig builds cfg from the config layers and the flags the user set,
// then configures logging
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	applyFlags(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("configuration error: invalid configuration: %w", err)
	}

	logger.Configure(loaded.LoggerConfig())
	cfg = loaded
	return nil
}

// applyFlags overrides the loaded configuration with explicitly set flags
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("driver") {
		c.Database.Driver = driver
		if !flags.Changed("port") {
			c.Database.Port = domain.DefaultPort(driver)
		}
	}
	if flags.Changed("host") {
		c.Database.Host = host
	}
	if flags.Changed("port") {
		c.Database.Port = port
	}
	if flags.Changed("database") {
		c.Database.Name = database
	}
	if flags.Changed("user") {
		c.Database.User = user
	}
	if flags.Changed("password") {
		c.Database.Password = password
	}
	if flags.Changed("sslmode") {
		c.Database.SSLMode = sslMode
	}
	if flags.Changed("path") {
		c.Database.Path = dbPath
	}
	if flags.Changed("trust-cert") {
		c.Database.TrustCert = trustCert
	}
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}
}

func runEnroll(cmd *cobra.Command, args []string) error {
	adapter, err := sqldb.NewAdapter(cfg.ConnectionConfig())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	console := prompt.NewConsole(cmd.InOrStdin(), out)

	var approver ports.Approver
	switch {
	case dryRun:
		approver = prompt.NewDryRunApprover(out)
	case confirm:
		approver = prompt.NewInteractiveApprover(console)
	default:
		approver = prompt.NewAutoApprover(true)
	}

	enrollment := services.NewEnrollment(adapter, console, approver, out)
	reportOutcome("enroll", enrollment.Run(context.Background()))
	return nil
}

// reportOutcome logs how a workflow ended. Failures were already shown to the
// user and do not change the exit status.
func reportOutcome(command string, err error) {
	log := logger.With("command", command)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(domain.KindOf(err))).Msg("Workflow aborted")
		return
	}
	log.Info().Msg("Workflow completed")
}
