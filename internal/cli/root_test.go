package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enunezf/studentdb/internal/config"
	"github.com/enunezf/studentdb/internal/core/domain"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute(%q) failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestEnrollAndListWithSQLite(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "students.sqlite")
	common := []string{"--config", filepath.Join(dir, "none.yaml"), "--driver", "sqlite", "--path", dbFile}

	out := execute(t, "CS101\nAlice\nComputer Science\nabc\n2\n", common...)
	for _, want := range []string{
		"Invalid year! Please enter a number such as 1, 2, 3, or 4.",
		"Total students in system: 1",
		"1  | CS101   | Alice | Computer Science | 2   ",
		"Changes committed successfully.",
		"Database connection closed.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Enroll output is missing %q\n%s", want, out)
		}
	}

	out = execute(t, "", append([]string{"list"}, common...)...)
	if !strings.Contains(out, "Total students in system: 1") || !strings.Contains(out, "CS101") {
		t.Errorf("Unexpected list output\n%s", out)
	}

	out = execute(t, "", append([]string{"connect"}, common...)...)
	if !strings.Contains(out, "Connection successful!") || !strings.Contains(out, "SQLite") {
		t.Errorf("Unexpected connect output\n%s", out)
	}
}

func TestEnrollFailureKeepsExitStatus(t *testing.T) {
	dir := t.TempDir()
	args := []string{"--config", filepath.Join(dir, "none.yaml"), "--driver", "sqlite", "--path", filepath.Join(dir, "missing", "students.sqlite")}

	// A failed run is reported on stdout; Execute itself still succeeds
	out := execute(t, "", args...)
	if !strings.Contains(out, "An error occurred:") {
		t.Errorf("Expected the connection error to be reported\n%s", out)
	}
}

func TestFlagsRepairConfigFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "studentdb.yaml")
	if err := os.WriteFile(configFile, []byte("database:\n  driver: sqlite\n  path: \"\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	out := execute(t, "", "list", "--config", configFile, "--path", filepath.Join(dir, "students.sqlite"))
	if !strings.Contains(out, "No students found.") {
		t.Errorf("The --path flag should complete the config file\n%s", out)
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := cmd.Flags()
	flags.StringVar(&driver, "driver", "", "")
	flags.IntVar(&port, "port", 0, "")
	flags.StringVarP(&host, "host", "s", "", "")
	flags.StringVar(&logLevel, "log-level", "", "")
	for _, name := range []string{"database", "user", "password", "sslmode", "path"} {
		flags.String(name, "", "")
	}
	flags.Bool("trust-cert", false, "")

	if err := flags.Parse([]string{"--driver", "sqlserver", "-s", "db.example", "--log-level", "debug"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	applyFlags(cmd, cfg)

	if cfg.Database.Driver != domain.DriverSQLServer || cfg.Database.Port != 1433 {
		t.Errorf("Driver flag should switch driver and default port, got %+v", cfg.Database)
	}
	if cfg.Database.Host != "db.example" || cfg.Logging.Level != "debug" {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if cfg.Database.User != "student_user" {
		t.Errorf("Unset flags must not override config, got user %q", cfg.Database.User)
	}
}
