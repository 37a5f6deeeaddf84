package merge

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wordmerge/pkg/encoding"
)

// ingestRunner builds the minimal Runner needed to drive ingestFile directly.
func ingestRunner(batchCapacity int) *Runner {
	stats := encoding.NewStats()
	return &Runner{
		args:          Arguments{Threads: 1},
		logger:        zap.NewNop(),
		enc:           encoding.NewHandler(encoding.AutoDetect(), stats, zap.NewNop()),
		stats:         stats,
		batchCapacity: batchCapacity,
	}
}

// drainBatches collects everything a producer emits, recording the size of
// each batch.
func drainBatches(batches <-chan LineBatch, sizes *[]int, got map[string]struct{}, done chan<- struct{}) {
	for b := range batches {
		*sizes = append(*sizes, len(b))
		for line := range b {
			got[line] = struct{}{}
		}
	}
	close(done)
}

func TestIngestFile_FlushesAtLineCapacity(t *testing.T) {
	dir := t.TempDir()

	const total = 257
	var content strings.Builder
	for i := 0; i < total; i++ {
		fmt.Fprintf(&content, "word-%03d\n", i)
	}
	path := writeFile(t, dir, "many.txt", []byte(content.String()))

	const capacity = 16
	r := ingestRunner(capacity)

	batches := make(chan LineBatch, channelCapacity)
	got := make(map[string]struct{})
	var sizes []int
	done := make(chan struct{})
	go drainBatches(batches, &sizes, got, done)

	lines, err := r.ingestFile(path, batches, zap.NewNop())
	require.NoError(t, err)
	close(batches)
	<-done

	assert.Equal(t, int64(total), lines)
	assert.Len(t, got, total, "lines lost across flushes")

	// 257 unique lines at capacity 16: sixteen full batches plus the final
	// remainder of one.
	require.Len(t, sizes, 17)
	for i, size := range sizes {
		assert.LessOrEqual(t, size, capacity, "batch %d exceeds capacity", i)
	}
}

func TestIngestFile_FlushesAtByteLimit(t *testing.T) {
	dir := t.TempDir()

	// Every line identical: within-batch dedup keeps the batch at one entry,
	// so only the raw-byte cap can trigger a flush.
	line := strings.Repeat("x", 63) + "\n"
	const repeats = 200_000 // ~12.8 MB, crosses the 10 MB flush threshold once
	path := writeFile(t, dir, "dupes.txt", bytes.Repeat([]byte(line), repeats))

	r := ingestRunner(1 << 20)

	batches := make(chan LineBatch, channelCapacity)
	got := make(map[string]struct{})
	var sizes []int
	done := make(chan struct{})
	go drainBatches(batches, &sizes, got, done)

	lines, err := r.ingestFile(path, batches, zap.NewNop())
	require.NoError(t, err)
	close(batches)
	<-done

	assert.Equal(t, int64(repeats), lines)
	assert.Len(t, got, 1)
	assert.GreaterOrEqual(t, len(sizes), 2, "byte cap never triggered a flush")
	for i, size := range sizes {
		assert.LessOrEqual(t, size, r.batchCapacity, "batch %d exceeds capacity", i)
	}
}
