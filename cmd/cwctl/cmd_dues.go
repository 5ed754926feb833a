// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/churchwallet/internal/finance/dues"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	pgstore "github.com/taibuivan/churchwallet/internal/platform/postgres"
	redisstore "github.com/taibuivan/churchwallet/internal/platform/redis"
)

var duesCmd = &cobra.Command{
	Use:   "dues",
	Short: "Monthly dues processing",
}

var duesRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Bill a period and mark overdue dues once",
	Long: `Run the dues processor once. It takes the same distributed lock as the
scheduler inside the API server, so it is safe to run while servers are up.`,
	Args: cobra.NoArgs,
	RunE: runDuesRun,
}

var duesPeriod string

func init() {
	duesCmd.AddCommand(duesRunCmd)

	duesRunCmd.Flags().StringVar(&duesPeriod, "period", "", "Billing period as YYYY-MM (default: current UTC month)")
}

func runDuesRun(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := environment()
	if err != nil {
		return err
	}

	pool, err := pgstore.NewPool(cmd.Context(), cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(cmd.Context(), cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	processor := dues.NewProcessor(
		dues.NewPostgresRepository(pool),
		redisstore.NewLocker(rdb),
		metrics.New(),
		logger,
		cfg.DuesGraceDays,
	)

	result, err := processor.Run(cmd.Context(), duesPeriod)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Skipped {
		fmt.Fprintf(out, "period %s: skipped, another run holds the lock\n", result.Period)
		return nil
	}
	fmt.Fprintf(out, "period %s: created=%d overdue=%d due=%s\n",
		result.Period, result.Created, result.Overdue, result.DueDate.Format("2006-01-02"))
	return nil
}
