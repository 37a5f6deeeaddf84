package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCapacity_WithinBounds(t *testing.T) {
	capacity, err := BatchCapacity()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, capacity, 1)
	assert.LessOrEqual(t, capacity, maxBatchLines)
}

func TestBatchCapacity_Stable(t *testing.T) {
	// Consecutive calls should be in the same ballpark; the bound only
	// matters at run start, but a wildly jumping result would mean the
	// estimate is garbage.
	first, err := BatchCapacity()
	require.NoError(t, err)
	second, err := BatchCapacity()
	require.NoError(t, err)

	assert.InEpsilon(t, float64(first), float64(second), 0.5)
}
