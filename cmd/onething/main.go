// Package main provides the CLI entrypoint for onething.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/onething/internal/config"
	"github.com/verte-zerg/onething/internal/mirror"
	"github.com/verte-zerg/onething/internal/store"
	"github.com/verte-zerg/onething/internal/streak"
	"github.com/verte-zerg/onething/internal/tui"
)

const (
	defaultLookback  = 7
	defaultThreshold = 2
	defaultWindow    = "grid"
)

var (
	dbPath string

	tuiWindow string
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "onething",
		Short:         "One task a day, shipped",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the data file (default: XDG data dir)")
	rootCmd.Flags().StringVar(&tuiWindow, "window", defaultWindow, "initial graph window: "+strings.Join(streak.WindowNames(), "|"))

	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newShipCmd())
	rootCmd.AddCommand(newSkipCmd())
	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.AddCommand(newMissedCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newMirrorCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	st, fileCfg, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	applyStringConfig(cmd, "window", &tuiWindow, fileCfg.Graph.Window)
	if _, err := streak.ParseWindow(tuiWindow); err != nil {
		return fmt.Errorf("invalid --window: %w", err)
	}
	lookback, threshold := reminderSettings(fileCfg)

	model := tui.NewModel(st, nowFunc, strings.ToLower(strings.TrimSpace(tuiWindow)))
	model.SetReminder(lookback, threshold)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// openStore loads the config file and opens the store it (or --db) points at.
func openStore() (*store.Store, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	path := dbPath
	if path == "" && fileCfg.Store.Path != nil {
		path = *fileCfg.Store.Path
	}
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path, store.WithLogf(logErrf))
	if err != nil {
		return nil, config.FileConfig{}, fmt.Errorf("failed to open db: %w", err)
	}
	return st, fileCfg, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func reminderSettings(fileCfg config.FileConfig) (int, int) {
	lookback, threshold := defaultLookback, defaultThreshold
	if fileCfg.Reminder.Lookback != nil {
		lookback = *fileCfg.Reminder.Lookback
	}
	if fileCfg.Reminder.Threshold != nil {
		threshold = *fileCfg.Reminder.Threshold
	}
	return lookback, threshold
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return fmt.Errorf("invalid [mirror] %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# onething configuration
# Uncomment a value to enable it. CLI flags override config values.

[store]
# path = %q

[reminder]
# lookback = %d           # Days before today to scan for missed days
# threshold = %d          # Missed days that trigger a reminder (0 disables)

[mirror]
# interval = %q         # How often the snapshot is rewritten
# out = %q

[graph]
# window = %q          # %s
# color = true            # Force ANSI colors even when not writing to a terminal
`,
		config.DefaultDBPath(),
		defaultLookback,
		defaultThreshold,
		mirror.DefaultInterval.String(),
		config.DefaultMirrorPath(),
		defaultWindow,
		strings.Join(streak.WindowNames(), "|"),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
