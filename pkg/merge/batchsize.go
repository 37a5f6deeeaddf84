package merge

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

const (
	// bytesPerLineEstimate approximates the in-memory overhead of one line
	// held in the dedup set (string header, map bucket, typical length).
	bytesPerLineEstimate = 100

	// maxBatchLines caps a single batch regardless of how much memory the
	// machine has.
	maxBatchLines = 10 * 1024 * 1024
)

// BatchCapacity computes the per-batch line capacity from currently
// available system memory: half of what is available, divided by the
// per-line overhead estimate, capped at a fixed ceiling. Computed once per
// run so concurrent workers see a stable bound. A failed memory query is
// fatal; guessing low risks thrash, guessing high risks the OOM killer.
func BatchCapacity() (int, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to query system memory: %v", ErrSystemResource, err)
	}

	capacity := vm.Available / 2 / bytesPerLineEstimate
	if capacity > maxBatchLines {
		capacity = maxBatchLines
	}
	if capacity < 1 {
		capacity = 1
	}
	return int(capacity), nil
}
