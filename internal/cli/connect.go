package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enunezf/studentdb/internal/adapters/sqldb"
	"github.com/enunezf/studentdb/internal/core/domain"
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Test the database connection",
	Long: `Test the connection to the configured database and display server information.

This command opens a connection, runs the round-trip verification query and
prints what the server reports about itself. Nothing is written.

Examples:
  # Connect with the development defaults
  studentdb connect

  # Connect to SQL Server
  studentdb connect --driver sqlserver --host localhost --database studentdb --user sa --password secret --trust-cert`,
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	conn := cfg.ConnectionConfig()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Connecting to %s...\n", conn.SafeString())

	adapter, err := sqldb.NewAdapter(conn)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := adapter.Connect(ctx); err != nil {
		return domain.NewWorkflowError(domain.KindConnectivity, "connect", err)
	}
	defer adapter.Close()

	if err := adapter.Verify(ctx); err != nil {
		return domain.NewWorkflowError(domain.KindVerification, "verify connection", err)
	}

	color.New(color.FgGreen).Fprintln(out, "✓ Connection successful!")

	info, err := adapter.ServerInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to get server info: %w", err)
	}

	bold := color.New(color.Bold)
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	bold.Fprint(out, "Database:")
	fmt.Fprintf(out, "  %s\n", info.Database)
	if info.User != "" {
		bold.Fprint(out, "User:")
		fmt.Fprintf(out, "      %s\n", info.User)
	}
	if info.Address != "" {
		bold.Fprint(out, "Server:")
		fmt.Fprintf(out, "    %s\n", info.Address)
	}
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintln(out)
	bold.Fprintln(out, "Version Details:")
	fmt.Fprintln(out, formatVersion(info.Version))

	return nil
}

// formatVersion indents the multi-line version string servers report
func formatVersion(version string) string {
	lines := strings.Split(version, "\n")
	var formatted []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			formatted = append(formatted, "  "+line)
		}
	}
	return strings.Join(formatted, "\n")
}
