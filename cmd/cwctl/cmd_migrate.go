// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/churchwallet/internal/platform/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database schema management",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrateUp,
}

var migrateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the migrations embedded in this binary",
	Args:  cobra.NoArgs,
	RunE:  runMigrateList,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied schema version",
	Args:  cobra.NoArgs,
	RunE:  runMigrateStatus,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.AddCommand(migrateListCmd)
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := environment()
	if err != nil {
		return err
	}
	if err := migration.RunUp(cfg.DatabaseURL, logger); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := environment()
	if err != nil {
		return err
	}
	state, err := migration.Status(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "version: %d\n", state.Version)
	fmt.Fprintf(out, "pending: %d\n", state.Pending)
	if state.Dirty {
		fmt.Fprintln(out, "dirty:   yes")
	}
	return nil
}

func runMigrateList(cmd *cobra.Command, _ []string) error {
	files, err := migration.Files()
	if err != nil {
		return err
	}
	for _, file := range files {
		fmt.Fprintln(cmd.OutOrStdout(), file)
	}
	return nil
}
