package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10, cfg.Threads)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Debug)
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"input_files":"in.txt","output_files":"out.txt"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "in.txt", cfg.InputFiles)
	assert.Equal(t, "out.txt", cfg.OutputFiles)
	assert.Equal(t, 10, cfg.Threads)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Debug)
}

func TestLoad_ExplicitValuesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"input_files":"in.txt","output_files":"out.txt","threads":4,"verbose":false,"debug":false}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Threads)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Debug)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	want := Config{InputFiles: "in.txt", OutputFiles: "out.txt", Threads: 7, Verbose: true, Debug: false}
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("a.txt\n"), 0o644))

	valid := Config{InputFiles: input, OutputFiles: filepath.Join(dir, "out.txt"), Threads: 10}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"zero threads", func(c *Config) { c.Threads = 0 }, ErrInvalidThreadCount},
		{"too many threads", func(c *Config) { c.Threads = 101 }, ErrInvalidThreadCount},
		{"missing input", func(c *Config) { c.InputFiles = "" }, ErrMissingInputFiles},
		{"input not found", func(c *Config) { c.InputFiles = filepath.Join(dir, "nope.txt") }, ErrInputFileNotFound},
		{"input is dir", func(c *Config) { c.InputFiles = dir }, ErrInputFileNotFound},
		{"missing output", func(c *Config) { c.OutputFiles = "" }, ErrMissingOutputFiles},
		{"input equals output", func(c *Config) { c.OutputFiles = c.InputFiles }, ErrInputOutputEqual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestGuidedSetup_AllDefaults(t *testing.T) {
	cfg, err := GuidedSetup(strings.NewReader("\n\n\n\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wordlists_to_merge.txt", cfg.InputFiles)
	assert.Equal(t, "/tmp/merged_wordlist.txt", cfg.OutputFiles)
	assert.Equal(t, 10, cfg.Threads)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Debug)
}

func TestGuidedSetup_ExplicitAnswers(t *testing.T) {
	in := strings.NewReader("lists.txt\nmerged.txt\n4\nn\ny\n")
	cfg, err := GuidedSetup(in)
	require.NoError(t, err)
	assert.Equal(t, "lists.txt", cfg.InputFiles)
	assert.Equal(t, "merged.txt", cfg.OutputFiles)
	assert.Equal(t, 4, cfg.Threads)
	assert.False(t, cfg.Verbose)
	assert.True(t, cfg.Debug)
}

func TestGuidedSetup_BadThreadCount(t *testing.T) {
	_, err := GuidedSetup(strings.NewReader("lists.txt\nmerged.txt\nmany\ny\nn\n"))
	assert.ErrorIs(t, err, ErrInvalidThreadCount)
}
