package logging

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(false, "wordmerge", "test")
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	debugLogger, err := New(true, "wordmerge", "test")
	require.NoError(t, err)
	require.NotNil(t, debugLogger)
	assert.True(t, debugLogger.Core().Enabled(zapcore.DebugLevel))
}

func TestErrorLog_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	el, err := OpenErrorLog(path)
	require.NoError(t, err)

	require.NoError(t, el.Logf("error processing file %s: %v", "a.txt", "boom"))
	require.NoError(t, el.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimRight(string(content), "\n")
	matched, err := regexp.MatchString(
		`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] error processing file a\.txt: boom$`, line)
	require.NoError(t, err)
	assert.True(t, matched, "unexpected line: %q", line)
}

func TestErrorLog_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")

	el, err := OpenErrorLog(path)
	require.NoError(t, err)
	require.NoError(t, el.Logf("first"))
	require.NoError(t, el.Close())

	el, err = OpenErrorLog(path)
	require.NoError(t, err)
	require.NoError(t, el.Logf("second"))
	require.NoError(t, el.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "first")
	assert.Contains(t, string(content), "second")
}

func TestErrorLog_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	el, err := OpenErrorLog(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = el.Logf("worker %d entry %d", n, j)
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, el.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	assert.Len(t, lines, 80)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "["), "line not timestamped: %q", line)
	}
}
