// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/churchwallet/pkg/query"
)

func TestStringSlice(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"active", []string{"active"}},
		{" active , moved,,", []string{"active", "moved"}},
		{"pending,overdue,pending", []string{"pending", "overdue"}},
		{" , ", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, query.StringSlice(tt.in), tt.in)
	}
}
