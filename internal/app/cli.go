package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/RealMosam/SEMS/internal/config"
	"github.com/RealMosam/SEMS/internal/telemetry"

	"github.com/spf13/pflag"
)

// Execute parses command line flags, loads configuration and runs role until
// SIGINT or SIGTERM. It returns the process exit code.
func Execute(role Role, args []string, stderr io.Writer) int {
	flags := pflag.NewFlagSet(string(role), pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.StringP("config", "c", "", "path to a YAML config file")
	port := flags.StringP("port", "p", "", "HTTP port, overrides config and environment")
	showVersion := flags.Bool("version", false, "print the version and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stderr, "%s %s\n", role, Version)
		return 0
	}

	cfg, err := config.Load(config.Default(string(role), role.DefaultPort()), *configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *port != "" {
		cfg.HTTPPort = *port
	}

	logger := telemetry.NewLogger(os.Stdout, cfg.Service, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg, role, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		return 1
	}
	if err := a.Run(ctx); err != nil {
		logger.Error("server stopped with error", "error", err)
		return 1
	}
	return 0
}
