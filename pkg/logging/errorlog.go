package logging

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrorLog is an append-only log file that records one timestamped line per
// processing error. It is kept separate from the primary zap stream so the
// error ledger survives log-level filtering and can be reviewed after a run.
type ErrorLog struct {
	mu   sync.Mutex
	file *os.File
}

// OpenErrorLog opens (or creates) the error log at path in append mode.
func OpenErrorLog(path string) (*ErrorLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log %s: %w", path, err)
	}
	return &ErrorLog{file: f}, nil
}

// Logf appends a single timestamped line. Safe for concurrent use.
func (e *ErrorLog) Logf(format string, args ...interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
	if _, err := e.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write error log entry: %w", err)
	}
	return e.file.Sync()
}

// Close releases the underlying file handle.
func (e *ErrorLog) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.file.Close()
}
