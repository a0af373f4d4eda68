// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against a temp SQLite data dir.
package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harperreed/mtbmaint/internal/storage"
	"github.com/harperreed/mtbmaint/internal/store"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty means default", input: "", want: ""},
		{name: "date", input: "2024-06-01", want: "2024-06-01"},
		{name: "RFC3339", input: "2024-06-01T08:30:00Z", want: "2024-06-01T08:30:00Z"},
		{name: "date and time", input: "2024-06-01 08:30", want: "2024-06-01 08:30"},
		{name: "day first", input: "01-06-2024", wantErr: true},
		{name: "words", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDate(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseDate(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string no truncation", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world this is a long string", 10, "hello w..."},
		{"empty string", "", 10, ""},
		{"very short maxLen", "hello", 3, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"needs padding", "hi", 5, "hi   "},
		{"exact length", "hello", 5, "hello"},
		{"longer than length", "hello world", 5, "hello world"},
		{"empty string", "", 5, "     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.length); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestBackupName(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"json":     "mtbmaint-backup-2024-06-15.json",
		"yaml":     "mtbmaint-backup-2024-06-15.yaml",
		"markdown": "mtbmaint-backup-2024-06-15.md",
	}
	for format, want := range tests {
		if got := backupName(format, now); got != want {
			t.Errorf("backupName(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "mtbmaint" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "mtbmaint")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}

	want := map[string][]string{
		"bike":      {"add", "list", "show", "edit", "delete"},
		"component": {"add", "edit", "delete"},
		"service":   {"log", "list", "last"},
		"ride":      {"add", "list"},
	}
	for _, name := range []string{"due", "guides", "guide", "export", "import", "clear", "stats", "migrate", "mcp", "version"} {
		want[name] = nil
	}

	for name, subs := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
			continue
		}
		for _, sub := range subs {
			if c, _, err := cmd.Find([]string{sub}); err != nil || c.Name() != sub {
				t.Errorf("command %q %q not registered", name, sub)
			}
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	want := []string{"json", "yaml", "markdown"}
	if len(exportCmd.ValidArgs) != len(want) {
		t.Fatalf("ValidArgs = %v, want %v", exportCmd.ValidArgs, want)
	}
	for i, arg := range want {
		if exportCmd.ValidArgs[i] != arg {
			t.Errorf("ValidArgs[%d] = %q, want %q", i, exportCmd.ValidArgs[i], arg)
		}
	}
}

// setupTestCLI points config and data at a temp dir and selects the SQLite
// backend. It returns the data directory.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	for _, name := range []string{"DATA_DIR", "LOG_LEVEL", "LOG_FORMAT", "S3_BUCKET", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY"} {
		t.Setenv("MTBMAINT_"+name, "")
	}
	t.Setenv("MTBMAINT_BACKEND", "sqlite")

	color.NoColor = true
	t.Cleanup(func() { _ = closeStore() })

	return filepath.Join(tmpDir, "data", "mtbmaint")
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// inspect opens the SQLite data written by the CLI.
func inspect(t *testing.T, dataDir string) *store.Store {
	t.Helper()
	blobs, err := storage.OpenSQLite(storage.DefaultSQLitePath(dataDir))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { blobs.Close() })
	return store.New(blobs)
}

func lineWith(out, substr string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

func TestBikeAddAndList(t *testing.T) {
	dataDir := setupTestCLI(t)

	out := mustRun(t, "bike", "add", "Hightower", "--make", "Santa Cruz", "--year", "2021", "--mileage", "120")
	if !strings.Contains(out, "Added bike Hightower") {
		t.Errorf("unexpected add output: %s", out)
	}

	out = mustRun(t, "bike", "list")
	if !strings.Contains(out, "Hightower") || !strings.Contains(out, "120 mi") {
		t.Errorf("list missing bike: %s", out)
	}

	bikes := inspect(t, dataDir).ListBikes()
	if len(bikes) != 1 {
		t.Fatalf("Expected 1 bike, got %d", len(bikes))
	}
	if bikes[0].Make != "Santa Cruz" || bikes[0].Year != 2021 || bikes[0].TotalMileage != 120 {
		t.Errorf("unexpected bike: %+v", bikes[0])
	}
}

func TestBikeAddValidation(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "bike", "add", "Bad", "--year", "3000"); err == nil {
		t.Error("Expected error for out-of-range year")
	}
	if _, err := run(t, "bike", "add", "Bad", "--mileage", "-1"); err == nil {
		t.Error("Expected error for negative mileage")
	}
}

func TestBikeEditOnlyChangesGivenFlags(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower", "--make", "Santa Cruz", "--mileage", "120")

	mustRun(t, "bike", "edit", "hightower", "--name", "Big Red", "--mileage", "150")

	b := inspect(t, dataDir).ListBikes()[0]
	if b.Name != "Big Red" || b.TotalMileage != 150 {
		t.Errorf("edit not applied: %+v", b)
	}
	if b.Make != "Santa Cruz" {
		t.Errorf("Make changed to %q without --make", b.Make)
	}
}

func TestBikeNotFound(t *testing.T) {
	setupTestCLI(t)

	_, err := run(t, "bike", "show", "nope")
	if err == nil || !strings.Contains(err.Error(), "bike not found") {
		t.Errorf("Expected bike not found error, got %v", err)
	}
}

func TestMaintenanceWorkflow(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "bike", "add", "Hightower", "--mileage", "120")
	mustRun(t, "component", "add", "Hightower", "SRAM GX chain", "--category", "drivetrain")
	mustRun(t, "ride", "add", "Hightower", "20", "--date", "2024-06-01", "--notes", "Demo Forest")
	mustRun(t, "service", "log", "Hightower", "chain-lube", "--mileage", "100", "--date", "2024-05-01")

	st := inspect(t, dataDir)
	b := st.ListBikes()[0]
	if b.TotalMileage != 140 {
		t.Errorf("TotalMileage = %v, want 140", b.TotalMileage)
	}
	if len(b.Components) != 1 || b.Components[0].InstalledMileage != 120 {
		t.Errorf("component not installed at bike mileage: %+v", b.Components)
	}
	if got := len(st.AllRides()); got != 1 {
		t.Errorf("rides = %d, want 1", got)
	}

	out := mustRun(t, "due", "Hightower")
	line := lineWith(out, "chain-lube")
	if !strings.Contains(line, "upcoming") || !strings.Contains(line, "Clean and Lube Chain") {
		t.Errorf("chain-lube should be upcoming at 40/50 mi, got line %q in:\n%s", line, out)
	}

	out = mustRun(t, "service", "last", "Hightower", "chain-lube")
	if !strings.Contains(out, "2024-05-01") || !strings.Contains(out, "40 mi") {
		t.Errorf("unexpected last output: %s", out)
	}

	out = mustRun(t, "service", "list")
	if !strings.Contains(out, "Clean and Lube Chain") {
		t.Errorf("service list missing log: %s", out)
	}

	out = mustRun(t, "bike", "show", "Hightower")
	for _, want := range []string{"SRAM GX chain", "20 mi since install", "Recent services", "2024-06-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("bike show missing %q:\n%s", want, out)
		}
	}
}

func TestServiceLogUnknownGuide(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower")

	_, err := run(t, "service", "log", "Hightower", "no-such-guide")
	if err == nil || !strings.Contains(err.Error(), "unknown guide") {
		t.Errorf("Expected unknown guide error, got %v", err)
	}
}

func TestRideAndComponentValidation(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower")

	tests := [][]string{
		{"ride", "add", "Hightower", "0"},
		{"ride", "add", "Hightower", "ten"},
		{"ride", "add", "Hightower", "5", "--date", "yesterday"},
		{"component", "add", "Hightower", "Tire", "--category", "tires"},
		{"component", "add", "Hightower", "Tire"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestComponentEditAndDelete(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower")
	mustRun(t, "component", "add", "Hightower", "Fox 36", "-c", "suspension")

	c := inspect(t, dataDir).ListBikes()[0].Components[0]
	mustRun(t, "component", "edit", "Hightower", c.ID[:8], "--name", "Fox 38")

	edited := inspect(t, dataDir).ListBikes()[0].Components[0]
	if edited.Name != "Fox 38" || edited.Category != c.Category {
		t.Errorf("unexpected component after edit: %+v", edited)
	}

	mustRun(t, "component", "delete", "Hightower", c.ID[:8])
	if n := len(inspect(t, dataDir).ListBikes()[0].Components); n != 0 {
		t.Errorf("Expected no components, got %d", n)
	}
}

func TestBikeDeleteCascades(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower")
	mustRun(t, "ride", "add", "Hightower", "10")
	mustRun(t, "service", "log", "Hightower", "chain-lube")

	mustRun(t, "bike", "delete", "Hightower")

	stats := inspect(t, dataDir).Stats()
	if stats.Bikes != 0 || stats.Rides != 0 || stats.MaintenanceLogs != 0 {
		t.Errorf("delete did not cascade: %+v", stats)
	}
}

func TestGuidesCommands(t *testing.T) {
	setupTestCLI(t)

	out := mustRun(t, "guides", "--category", "brakes")
	if strings.Contains(out, "chain-lube") {
		t.Errorf("brakes filter listed a drivetrain guide:\n%s", out)
	}
	if !strings.Contains(out, "brake") {
		t.Errorf("brakes filter listed nothing:\n%s", out)
	}

	out = mustRun(t, "guides", "--search", "lube")
	if !strings.Contains(out, "chain-lube") {
		t.Errorf("search missed chain-lube:\n%s", out)
	}

	out = mustRun(t, "guide", "chain-lube")
	for _, want := range []string{"Clean and Lube Chain", "every 50 mi", "1. "} {
		if !strings.Contains(out, want) {
			t.Errorf("guide output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "guide", "nope"); err == nil {
		t.Error("Expected error for unknown guide")
	}
	if _, err := run(t, "guides", "--category", "tires"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower", "--mileage", "120")
	mustRun(t, "ride", "add", "Hightower", "20")
	before := inspect(t, dataDir).ExportSnapshot()

	exportDir := t.TempDir()
	mustRun(t, "export", "json", "-o", exportDir)
	files, _ := filepath.Glob(filepath.Join(exportDir, "mtbmaint-backup-*.json"))
	if len(files) != 1 {
		t.Fatalf("Expected one backup file, got %v", files)
	}

	mustRun(t, "clear", "--confirm")
	if n := inspect(t, dataDir).Stats().Bikes; n != 0 {
		t.Fatalf("clear left %d bikes", n)
	}

	out := mustRun(t, "import", files[0])
	if !strings.Contains(out, "1 bikes") {
		t.Errorf("unexpected import output: %s", out)
	}

	after := inspect(t, dataDir).ExportSnapshot()
	if len(after.Bikes) != 1 || after.Bikes[0].ID != before.Bikes[0].ID {
		t.Errorf("ids not preserved: before %+v after %+v", before.Bikes, after.Bikes)
	}
	if len(after.Rides) != 1 || after.Rides[0].ID != before.Rides[0].ID {
		t.Errorf("rides not preserved: %+v", after.Rides)
	}
}

func TestExportFormats(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower")

	out := mustRun(t, "export", "json")
	if !strings.Contains(out, "\n  \"bikes\"") {
		t.Errorf("JSON export not indented:\n%s", out)
	}
	out = mustRun(t, "export", "yaml")
	if !strings.Contains(out, "bikes:") {
		t.Errorf("YAML export missing bikes:\n%s", out)
	}
	out = mustRun(t, "export", "markdown")
	if !strings.Contains(out, "# Mountain Bike Maintenance Report") {
		t.Errorf("Markdown export missing title:\n%s", out)
	}
	if _, err := run(t, "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestImportRejectsBadFileAndKeepsData(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower")

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "import", bad)
	if !errors.Is(err, store.ErrParse) {
		t.Errorf("Expected ErrParse, got %v", err)
	}

	wrong := filepath.Join(t.TempDir(), "wrong.json")
	if err := os.WriteFile(wrong, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err = run(t, "import", wrong)
	if !errors.Is(err, store.ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}

	if n := inspect(t, dataDir).Stats().Bikes; n != 1 {
		t.Errorf("rejected import changed data: %d bikes", n)
	}
}

func TestClearRequiresConfirm(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower")

	if _, err := run(t, "clear"); err == nil {
		t.Error("Expected error without --confirm")
	}
	if n := inspect(t, dataDir).Stats().Bikes; n != 1 {
		t.Errorf("clear without --confirm removed data")
	}
}

func TestStats(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower", "--mileage", "100")
	mustRun(t, "bike", "add", "Commuter", "--mileage", "50.5")

	out := mustRun(t, "stats")
	if !strings.Contains(lineWith(out, "Bikes:"), "2") {
		t.Errorf("unexpected stats:\n%s", out)
	}
	if !strings.Contains(out, "150.5 mi") {
		t.Errorf("fleet mileage missing:\n%s", out)
	}
	if !strings.Contains(out, "sqlite") {
		t.Errorf("backend missing:\n%s", out)
	}
}

func TestMigrateSQLiteToBadger(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "bike", "add", "Hightower")

	out := mustRun(t, "migrate", "--from", "sqlite", "--to", "badger", "--dry-run")
	if !strings.Contains(out, "Would copy") {
		t.Errorf("unexpected dry run output: %s", out)
	}

	mustRun(t, "migrate", "--from", "sqlite", "--to", "badger")

	out = mustRun(t, "--backend", "badger", "bike", "list")
	if !strings.Contains(out, "Hightower") {
		t.Errorf("badger backend missing migrated bike:\n%s", out)
	}

	_, err := run(t, "migrate", "--from", "sqlite", "--to", "badger")
	if err == nil || !strings.Contains(err.Error(), "--overwrite") {
		t.Errorf("Expected overwrite guard, got %v", err)
	}
	mustRun(t, "migrate", "--from", "sqlite", "--to", "badger", "--overwrite")
}

func TestMigrateValidation(t *testing.T) {
	setupTestCLI(t)

	for _, args := range [][]string{
		{"migrate", "--from", "sqlite", "--to", "sqlite"},
		{"migrate", "--from", "sqlite"},
		{"migrate", "--from", "csv", "--to", "badger"},
	} {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestVersionSkipsStore(t *testing.T) {
	setupTestCLI(t)
	t.Setenv("MTBMAINT_BACKEND", "bogus")

	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "mtbmaint ") {
		t.Errorf("unexpected version output: %q", out)
	}

	if _, err := run(t, "stats"); err == nil {
		t.Error("Expected config error for unknown backend")
	}
}
