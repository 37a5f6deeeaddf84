package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wordmerge/pkg/config"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger = zap.NewNop()

	buf := new(bytes.Buffer)
	RootCmd.SetOut(buf)
	RootCmd.SetErr(buf)
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "wordmerge")
	assert.Contains(t, out, "merge")
	assert.Contains(t, out, "resume")
}

func TestMerge_RequiresInputAndOutput(t *testing.T) {
	_, err := executeCommand(t, "merge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input list")
}

func TestResume_RequiresProgressFile(t *testing.T) {
	_, err := executeCommand(t, "resume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--progress-file")
}

func TestVersionCommand(t *testing.T) {
	_, err := executeCommand(t, "version", "--short")
	assert.NoError(t, err)
}

func TestGenerateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordmerge.json")

	_, err := executeCommand(t, "generate-config", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Threads)
	assert.True(t, cfg.Verbose)
}

func TestMerge_InvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := executeCommand(t, "merge", "-c", path)
	assert.Error(t, err)
}
