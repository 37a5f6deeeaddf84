package encoding

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Stats accumulates encoding activity across a run for the end-of-run
// summary. Workers record concurrently, so every mutation takes the mutex.
type Stats struct {
	mu             sync.Mutex
	filesProcessed int
	detected       map[string]int
	forced         map[string]int
	fallback       map[string]int
	replacements   int64
	bytesProcessed int64
	start          time.Time
}

// NewStats returns an empty collector with the clock started.
func NewStats() *Stats {
	return &Stats{
		detected: make(map[string]int),
		forced:   make(map[string]int),
		fallback: make(map[string]int),
		start:    time.Now(),
	}
}

// RecordProfile tallies one resolved file under its basis bucket.
func (s *Stats) RecordProfile(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filesProcessed++
	switch p.Basis {
	case BasisForced:
		s.forced[p.Name]++
	case BasisFallback:
		s.fallback[p.Name]++
	default:
		// detected and heuristic both count as detected for reporting
		s.detected[p.Name]++
	}
}

// AddReplacements records U+FFFD substitutions produced during conversion.
func (s *Stats) AddReplacements(n int64) {
	s.mu.Lock()
	s.replacements += n
	s.mu.Unlock()
}

// AddBytes records raw input bytes consumed.
func (s *Stats) AddBytes(n int64) {
	s.mu.Lock()
	s.bytesProcessed += n
	s.mu.Unlock()
}

// FilesProcessed returns the number of files resolved so far.
func (s *Stats) FilesProcessed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filesProcessed
}

// Replacements returns the total replacement-character count.
func (s *Stats) Replacements() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replacements
}

// BytesProcessed returns total raw bytes consumed.
func (s *Stats) BytesProcessed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytesProcessed
}

// Summary renders a one-line human summary for the end of a run.
func (s *Stats) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "files=%d bytes=%d replacements=%d elapsed=%s",
		s.filesProcessed, s.bytesProcessed, s.replacements, time.Since(s.start).Round(time.Millisecond))

	appendBucket := func(label string, m map[string]int) {
		if len(m) == 0 {
			return
		}
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, " %s=[", label)
		for i, name := range names {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s:%d", name, m[name])
		}
		b.WriteString("]")
	}
	appendBucket("detected", s.detected)
	appendBucket("forced", s.forced)
	appendBucket("fallback", s.fallback)

	return b.String()
}
