// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/churchwallet/pkg/slice"
)

type status string

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"active", "moved"}, slice.Strings([]status{"active", "moved"}))
	assert.Nil(t, slice.Strings[status](nil))
}
