package utilities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumberUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		n := NewOrderNumber()
		require.True(t, strings.HasPrefix(n, "ORD-"), n)
		_, dup := seen[n]
		require.False(t, dup, "duplicate order number %s", n)
		seen[n] = struct{}{}
	}
}

func TestSnowflakeFallsBackToKSUID(t *testing.T) {
	// node ids are 10 bits; 5000 cannot be built
	id := NewSnowflakeIDWithNode(5000)
	assert.Len(t, id, 27)
}
