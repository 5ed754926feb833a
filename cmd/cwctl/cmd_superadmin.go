// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pgstore "github.com/taibuivan/churchwallet/internal/platform/postgres"
	"github.com/taibuivan/churchwallet/internal/users/account"
)

var superAdminCmd = &cobra.Command{
	Use:   "superadmin",
	Short: "Super admin account management",
}

var superAdminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a super admin account",
	Long: `Create a super admin account. This is the only way to create the first
account of a fresh deployment; every other account is created through the API.`,
	Args: cobra.NoArgs,
	RunE: runSuperAdminCreate,
}

var superAdminFlags struct {
	email    string
	password string
	name     string
}

func init() {
	superAdminCmd.AddCommand(superAdminCreateCmd)

	flags := superAdminCreateCmd.Flags()
	flags.StringVar(&superAdminFlags.email, "email", "", "Login email")
	flags.StringVar(&superAdminFlags.password, "password", "", "Initial password")
	flags.StringVar(&superAdminFlags.name, "name", "", "Full name")
	_ = superAdminCreateCmd.MarkFlagRequired("email")
	_ = superAdminCreateCmd.MarkFlagRequired("password")
	_ = superAdminCreateCmd.MarkFlagRequired("name")
}

func runSuperAdminCreate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := environment()
	if err != nil {
		return err
	}

	pool, err := pgstore.NewPool(cmd.Context(), cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	service := account.NewService(account.NewPostgresRepository(pool), nil, logger)
	created, err := service.BootstrapSuperAdmin(cmd.Context(), superAdminFlags.email, superAdminFlags.password, superAdminFlags.name)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "super admin created: id=%s email=%s\n", created.ID, superAdminFlags.email)
	return nil
}
