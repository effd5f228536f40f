// Package main provides the CLI entrypoint for prepdesk.
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

	"github.com/verte-zerg/prepdesk/internal/attempts"
	"github.com/verte-zerg/prepdesk/internal/config"
	"github.com/verte-zerg/prepdesk/internal/goals"
	"github.com/verte-zerg/prepdesk/internal/stats"
	"github.com/verte-zerg/prepdesk/internal/store"
	"github.com/verte-zerg/prepdesk/internal/tui"
)

const (
	defaultLang           = "en"
	defaultCurveWindow    = 5
	defaultDrillQuestions = 30
	defaultDrillFactor    = 2.0
)

var dbPath string

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "prepdesk",
		Short:         "Exam preparation tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: $XDG_DATA_HOME/prepdesk/prepdesk.db)")

	rootCmd.AddCommand(newGoalCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAttemptCmd())
	rootCmd.AddCommand(newAnalyticsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newDrillCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

// env bundles the opened database with the stores built on it.
type env struct {
	cfg      config.FileConfig
	db       *store.SQLite
	goals    *goals.Store
	attempts *attempts.Store
}

func openEnv(cmd *cobra.Command) (*env, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	path := config.DefaultDBPath()
	applyStringConfig(cmd, "db", &path, fileCfg.Storage.DB)
	if cmd.Flags().Changed("db") {
		path = dbPath
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	lang := defaultLang
	if fileCfg.Goals.Lang != nil {
		lang = *fileCfg.Goals.Lang
	}
	return &env{
		cfg:      fileCfg,
		db:       db,
		goals:    goals.New(db, goals.WithLang(lang), goals.WithWarn(logErrf)),
		attempts: attempts.New(db, logErrf),
	}, nil
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func (e *env) strategies() stats.StrategyTable {
	return stats.DefaultStrategies().Merge(stats.StrategyTable(e.cfg.Strategy))
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	m := tui.NewModel(e.goals, e.attempts, time.Now)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# prepdesk configuration
# Uncomment a value to enable it. CLI flags override config values.

[goals]
# lang = %q               # Goal label language (en, hi)

[analytics]
# min-sample = %d          # Questions a subject needs before it is classified
# curve-window = %d        # Moving average window for trend plots
# last = 0                # Limit analytics to the last N attempts (0 = all)

[drill]
# questions = %d          # Questions per practice mix
# factor = %.1f            # Bias toward weak subjects

[storage]
# db = "/path/to/prepdesk.db"

# Per-subject study strategies override or extend the built-in table.
# [strategy."Current Affairs"]
# daily-time = 20
# resources = ["Monthly digest"]
# topics = ["Budget", "Schemes"]
# tips = ["Revise weekly"]
`,
		defaultLang,
		stats.DefaultMinSample,
		defaultCurveWindow,
		defaultDrillQuestions,
		defaultDrillFactor,
	)
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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
