// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/pkg/pointer"
)

/*
TestFallback verifies nil keeps the current value and a set pointer replaces it.
*/
func TestFallback(t *testing.T) {
	assert.Equal(t, 1972, pointer.Fallback(nil, 1972))
	assert.Equal(t, 2002, pointer.Fallback(pointer.To(2002), 1972))
	assert.Equal(t, "", pointer.Fallback(pointer.To(""), "bio"))
}
