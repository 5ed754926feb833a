// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/churchwallet/pkg/uuid"
)

/*
TestNew_SortableAndValid checks format and monotonic ordering.
*/
func TestNew_SortableAndValid(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second)
	assert.False(t, uuid.Valid("not-a-uuid"))
}
