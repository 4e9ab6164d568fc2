// dmgcalc computes per-talent damage, elemental reactions, team buffs and
// build quality for a team described in YAML.
//
// Usage:
//
//	dmgcalc analyze request.yaml [-o report.yaml] [--format yaml|json]
//	dmgcalc reactions -m "Hu Tao=pyro" -m "Xingqiu=hydro"
//	dmgcalc quality --crit-rate 70 --crit-dmg 180
//	dmgcalc tables [--dump]
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/dmgcalc/internal/model"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	// exitInput reports a rejected request: invalid input or an unknown name.
	exitInput = 2
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrNotFound):
		return exitInput
	default:
		return exitFailure
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
