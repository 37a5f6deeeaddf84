// Package config manages the JSON run configuration: load with defaults,
// template generation, interactive guided setup, and validation.
package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Validation errors. These abort a run before any processing starts.
var (
	ErrInvalidThreadCount   = errors.New("thread count must be between 1 and 100")
	ErrMissingInputFiles    = errors.New("input files path must be specified")
	ErrMissingOutputFiles   = errors.New("output files path must be specified")
	ErrInputFileNotFound    = errors.New("input file not found")
	ErrInputOutputEqual     = errors.New("input and output paths cannot be the same")
	ErrOutputDirNotWritable = errors.New("output directory is not writable")
	ErrInvalidFormat        = errors.New("invalid configuration format")
)

// Config holds the run settings persisted as JSON.
type Config struct {
	InputFiles  string `json:"input_files,omitempty" mapstructure:"input_files"`
	OutputFiles string `json:"output_files,omitempty" mapstructure:"output_files"`
	Threads     int    `json:"threads" mapstructure:"threads"`
	Verbose     bool   `json:"verbose" mapstructure:"verbose"`
	Debug       bool   `json:"debug" mapstructure:"debug"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{Threads: 10, Verbose: true, Debug: true}
}

// Template returns the configuration written by generate-config.
func Template() Config {
	return Default()
}

// Load reads a JSON configuration, filling absent fields with defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("threads", 10)
	v.SetDefault("verbose", true)
	v.SetDefault("debug", true)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return cfg, nil
}

// Save writes the configuration as pretty-printed JSON.
func (c Config) Save(path string) error {
	content, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration before a merge run starts.
func (c Config) Validate() error {
	if c.Threads < 1 || c.Threads > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreadCount, c.Threads)
	}

	if c.InputFiles == "" {
		return ErrMissingInputFiles
	}
	info, err := os.Stat(c.InputFiles)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInputFileNotFound, c.InputFiles)
	}

	if c.OutputFiles == "" {
		return ErrMissingOutputFiles
	}
	if c.InputFiles == c.OutputFiles {
		return ErrInputOutputEqual
	}

	dir := filepath.Dir(c.OutputFiles)
	if dir == "" {
		dir = "."
	}
	probe, err := os.CreateTemp(dir, ".write-test-*")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOutputDirNotWritable, dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}

// GuidedSetup builds a configuration interactively, reading answers from in.
func GuidedSetup(in io.Reader) (Config, error) {
	reader := bufio.NewReader(in)

	inputFiles, err := promptString(reader, "Enter path to input files list", "/tmp/wordlists_to_merge.txt")
	if err != nil {
		return Config{}, err
	}
	outputFiles, err := promptString(reader, "Enter path for output file", "/tmp/merged_wordlist.txt")
	if err != nil {
		return Config{}, err
	}
	threadsRaw, err := promptString(reader, "Enter number of threads", "10")
	if err != nil {
		return Config{}, err
	}
	verbose, err := promptBool(reader, "Enable verbose logging?", true)
	if err != nil {
		return Config{}, err
	}
	debug, err := promptBool(reader, "Enable debug logging?", false)
	if err != nil {
		return Config{}, err
	}

	threads, err := strconv.Atoi(threadsRaw)
	if err != nil || threads < 1 || threads > 100 {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidThreadCount, threadsRaw)
	}

	return Config{
		InputFiles:  inputFiles,
		OutputFiles: outputFiles,
		Threads:     threads,
		Verbose:     verbose,
		Debug:       debug,
	}, nil
}

// promptString asks one question and returns the answer or the default.
func promptString(reader *bufio.Reader, message, def string) (string, error) {
	fmt.Printf("%s [%s]: ", message, def)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return def, nil
	}
	return response, nil
}

// promptBool asks a yes/no question.
func promptBool(reader *bufio.Reader, message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Printf("%s (%s): ", message, hint)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	if response == "" {
		return def, nil
	}
	return response == "y" || response == "yes", nil
}
