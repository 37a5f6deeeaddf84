package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const mib = 1024 * 1024

func TestOptimizeOrder_BucketsLargestFirst(t *testing.T) {
	files := []FileDescriptor{
		{Path: "tiny.txt", Size: 1 * mib},
		{Path: "huge.txt", Size: 2048 * mib},
		{Path: "mid.txt", Size: 500 * mib},
		{Path: "small.txt", Size: 50 * mib},
		{Path: "giant.txt", Size: 4096 * mib},
		{Path: "mid2.txt", Size: 200 * mib},
	}

	got := OptimizeOrder(files)
	want := []string{
		"giant.txt", "huge.txt", // >= 1GB, largest first
		"mid.txt", "mid2.txt", // >= 100MB
		"small.txt", "tiny.txt", // < 100MB
	}
	assert.Equal(t, want, got)
}

func TestOptimizeOrder_Empty(t *testing.T) {
	assert.Empty(t, OptimizeOrder(nil))
}

func TestOptimizeOrder_DoesNotMutateInput(t *testing.T) {
	files := []FileDescriptor{
		{Path: "b.txt", Size: 10},
		{Path: "a.txt", Size: 20},
	}
	OptimizeOrder(files)
	assert.Equal(t, "b.txt", files[0].Path)
	assert.Equal(t, "a.txt", files[1].Path)
}

func TestOptimizeOrder_BoundaryValues(t *testing.T) {
	files := []FileDescriptor{
		{Path: "exactly-small-limit.txt", Size: smallFileLimit},
		{Path: "just-under-small.txt", Size: smallFileLimit - 1},
		{Path: "exactly-medium-limit.txt", Size: mediumFileLimit},
	}

	got := OptimizeOrder(files)
	want := []string{
		"exactly-medium-limit.txt", // >= 1GB bucket
		"exactly-small-limit.txt",  // medium bucket
		"just-under-small.txt",     // small bucket
	}
	assert.Equal(t, want, got)
}
