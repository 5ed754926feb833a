// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMigrateList_PrintsEmbeddedFiles(t *testing.T) {
	out, err := execute(t, "migrate", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "000001_core.up.sql")
	assert.Contains(t, out, "000003_finance.up.sql")
}

func TestSuperAdminCreate_RequiresFlags(t *testing.T) {
	_, err := execute(t, "superadmin", "create", "--email", "admin@parish.org")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{{"migrate", "up"}, {"migrate", "status"}, {"superadmin", "create"}, {"dues", "run"}} {
		command, _, err := rootCmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], command.Name())
	}
}
