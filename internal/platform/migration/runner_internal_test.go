// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestPgx5DSN rewrites only the postgres schemes.
*/
func TestPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/cw":   "pgx5://u:p@db:5432/cw",
		"postgresql://u:p@db:5432/cw": "pgx5://u:p@db:5432/cw",
		"pgx5://u:p@db:5432/cw":       "pgx5://u:p@db:5432/cw",
		"host=db user=u":              "host=db user=u",
	}
	for input, want := range tests {
		assert.Equal(t, want, pgx5DSN(input))
	}
}

/*
TestFiles_PairedUpAndDown ensures every up migration ships with a down.
*/
func TestFiles_PairedUpAndDown(t *testing.T) {
	names, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Fatalf("unexpected migration file %q", name)
		}
	}
	assert.Equal(t, ups, downs)
}

/*
TestUpVersions_Ascending verifies every up file carries a distinct version in
apply order.
*/
func TestUpVersions_Ascending(t *testing.T) {
	versions, err := upVersions()
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3}, versions)
}
