package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/udisondev/dmgcalc/internal/config"
	"github.com/udisondev/dmgcalc/internal/data"
)

// version is set at build time via -ldflags.
var version = "dev"

const defaultConfigPath = "config/dmgcalc.yaml"

// app carries state shared by subcommands after the root pre-run.
type app struct {
	configPath string
	logLevel   string
	cfg        config.Calculator

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "dmgcalc",
		Short: "Team damage and elemental reaction calculator",
		Long: "dmgcalc aggregates character stats, applies team buffs, detects\n" +
			"elemental reactions and computes per-talent damage and build quality.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
	}
	root.Version = version
	root.SetOut(stdout)
	root.SetErr(stderr)

	configPath := defaultConfigPath
	if p := os.Getenv("DMGCALC_CONFIG"); p != "" {
		configPath = p
	}
	f := root.PersistentFlags()
	f.StringVarP(&a.configPath, "config", "c", configPath, "Path to config YAML (defaults apply when missing)")
	f.StringVar(&a.logLevel, "log-level", "", "Override log level: debug, info, warn, error")

	root.AddCommand(
		newAnalyzeCmd(a),
		newReactionsCmd(a),
		newQualityCmd(a),
		newTablesCmd(a),
	)
	return root
}

// init loads config and configures slog. Logs go to stderr so that reports
// on stdout stay machine-readable.
func (a *app) init() error {
	cfg, err := config.LoadCalculator(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", a.configPath, "tables", cfg.TablesPath, "workers", cfg.Workers)
	return nil
}

func (a *app) loadTables() (*data.Tables, error) {
	if a.cfg.TablesPath == "" {
		return data.DefaultTables()
	}
	return data.LoadTables(a.cfg.TablesPath)
}
