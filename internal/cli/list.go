package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/enunezf/studentdb/internal/adapters/sqldb"
	"github.com/enunezf/studentdb/internal/core/services"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the students table without adding anyone",
	Long: `Print the number of students and the full students table, ordered by id.

Nothing is ever committed. The students table is created if missing inside a
transaction that is always rolled back, so the database user still needs the
privilege to create tables. On a database without a students table it prints
"No students found." and the database is left as it was.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	adapter, err := sqldb.NewAdapter(cfg.ConnectionConfig())
	if err != nil {
		return err
	}

	listing := services.NewListing(adapter, cmd.OutOrStdout())
	reportOutcome("list", listing.Run(context.Background()))
	return nil
}
