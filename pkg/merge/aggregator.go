package merge

import (
	"bufio"
	"fmt"
	"os"
)

// aggregate is the single consumer of the batch channel. It exclusively owns
// the global dedup set: producers never touch it, which is what removes any
// need for locking on the hot path. Each incoming batch is folded in by set
// union, and the running unique count is published for the tracker. When the
// channel closes, ownership of the set passes back through done.
func (r *Runner) aggregate(batches <-chan LineBatch, seed map[string]struct{}, done chan<- map[string]struct{}) {
	set := seed
	if set == nil {
		set = make(map[string]struct{}, batchSizeHint)
	}

	for batch := range batches {
		for line := range batch {
			set[line] = struct{}{}
		}
		r.tracker.UpdateDedup(len(set), r.totalLines.Load())
	}

	done <- set
}

// writeOutput streams the final set to path, one line per entry with a
// trailing newline on the last line. The buffered writer flushes at its
// fixed byte threshold and once more on completion. Output order is
// unspecified by contract, so map iteration order is fine.
func writeOutput(path string, set map[string]struct{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, outputBufferSize)
	for line := range set {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
