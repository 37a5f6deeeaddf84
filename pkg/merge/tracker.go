package merge

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Tracker renders the file-level progress bar and the running dedup counts.
// The bar only draws when stderr is a terminal; otherwise progress is left
// to the structured log.
type Tracker struct {
	bar    *progressbar.ProgressBar
	logger *zap.Logger
	start  time.Time
}

// NewTracker builds a tracker for totalFiles input files.
func NewTracker(totalFiles int, logger *zap.Logger) *Tracker {
	visible := term.IsTerminal(int(os.Stderr.Fd()))
	bar := progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("merging"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	return &Tracker{bar: bar, logger: logger, start: time.Now()}
}

// FileDone advances the file bar by one completed input file.
func (t *Tracker) FileDone() {
	_ = t.bar.Add(1)
}

// UpdateDedup refreshes the bar description with the running counts.
func (t *Tracker) UpdateDedup(unique int, totalLines int64) {
	t.bar.Describe(fmt.Sprintf("merging (unique: %d / %d lines)", unique, totalLines))
}

// Finish closes out the bar and logs the elapsed time.
func (t *Tracker) Finish() {
	_ = t.bar.Finish()
	t.logger.Debug("Progress tracking finished",
		zap.Duration("elapsed", time.Since(t.start)))
}
