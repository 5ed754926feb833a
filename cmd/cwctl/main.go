// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command cwctl is the operator CLI for Church Wallet.
//
// It shares configuration with the API server (environment variables, plus
// a local .env outside production) and talks to PostgreSQL and Redis directly.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/churchwallet/internal/platform/config"
	"github.com/taibuivan/churchwallet/internal/platform/constants"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cwctl",
	Short: "Church Wallet operator CLI",
	Long: `cwctl runs operational tasks against a Church Wallet deployment.

Examples:
  cwctl migrate up
  cwctl superadmin create --email admin@parish.org --password 'S3cret!pass' --name "Parish Office"
  cwctl dues run --period 2026-10`,
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbose bool

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(superAdminCmd)
	rootCmd.AddCommand(duesCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// environment loads the configuration and a text logger on stderr.
func environment() (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
