// Package merge implements the streaming merge-deduplication engine: input
// files are size-ordered, ingested concurrently with encoding-aware
// conversion, deduplicated through a single aggregator, and checkpointed per
// completed file so interrupted runs can resume.
package merge

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wordmerge/pkg/encoding"
	"wordmerge/pkg/logging"
	"wordmerge/pkg/progress"
	"wordmerge/pkg/shutdown"
)

const (
	errorLogPath = "error.log"

	// metadataParallelism bounds the concurrent stat calls when collecting
	// file sizes for the order optimizer.
	metadataParallelism = 16
)

// Runner holds the wired pipeline for one merge run.
type Runner struct {
	args          Arguments
	logger        *zap.Logger
	errlog        *logging.ErrorLog
	prog          *progress.State
	coord         *shutdown.Coordinator
	enc           *encoding.Handler
	stats         *encoding.Stats
	tracker       *Tracker
	batchCapacity int

	totalLines atomic.Int64
}

// Run executes a fresh merge.
func Run(args Arguments, logger *zap.Logger) error {
	prog := progress.New(args.InputFile, args.OutputFile, args.Threads, args.ProgressFile)
	return run(args, prog, false, logger)
}

// Resume continues an interrupted merge from its checkpoint file. Files
// already recorded as processed are skipped; lines they contributed are
// carried forward from the partial output written when the previous run
// stopped.
func Resume(progressFile string, logger *zap.Logger) error {
	prog, err := progress.Load(progressFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResume, err)
	}

	args := Arguments{
		InputFile:    prog.InputFile,
		OutputFile:   prog.OutputFile,
		Threads:      prog.Threads,
		ProgressFile: progressFile,
		Verbose:      true,
		Debug:        true,
	}
	return run(args, prog, true, logger)
}

func run(args Arguments, prog *progress.State, resumed bool, logger *zap.Logger) error {
	start := time.Now()
	if args.Threads <= 0 {
		args.Threads = 10
	}

	errlog, err := logging.OpenErrorLog(errorLogPath)
	if err != nil {
		return err
	}
	defer errlog.Close()

	coord := shutdown.NewCoordinator(prog, logger)
	coord.Start()
	defer coord.Stop()

	stats := encoding.NewStats()
	enc := encoding.NewHandler(encoding.AutoDetect(), stats, logger)

	all, err := readInputList(args.InputFile)
	if err != nil {
		return fmt.Errorf("failed to read input list %s: %w", args.InputFile, err)
	}
	logger.Info("Starting merge",
		zap.String("inputList", args.InputFile),
		zap.String("output", args.OutputFile),
		zap.Int("threads", args.Threads),
		zap.Int("files", len(all)),
		zap.Bool("resumed", resumed))

	remaining := all
	if resumed {
		remaining, err = filterProcessed(all, prog)
		if err != nil {
			return err
		}
		logger.Info("Resuming from checkpoint",
			zap.Int("alreadyProcessed", len(all)-len(remaining)),
			zap.Int("remaining", len(remaining)),
			zap.Int64("position", prog.Position()))
	}

	capacity, err := BatchCapacity()
	if err != nil {
		// Save the ledger so whatever was recorded before the failure is
		// not lost, then abort.
		if saveErr := prog.Save(); saveErr != nil {
			logger.Error("Failed to save checkpoint", zap.Error(saveErr))
		}
		return err
	}
	logger.Debug("Computed batch capacity", zap.Int("lines", capacity))

	descriptors := collectMetadata(remaining, errlog, logger)
	ordered := OptimizeOrder(descriptors)

	r := &Runner{
		args:          args,
		logger:        logger,
		errlog:        errlog,
		prog:          prog,
		coord:         coord,
		enc:           enc,
		stats:         stats,
		tracker:       NewTracker(len(ordered), logger),
		batchCapacity: capacity,
	}

	var seed map[string]struct{}
	if resumed {
		seed = seedFromOutput(args.OutputFile, logger)
	}

	batches := make(chan LineBatch, channelCapacity)
	result := make(chan map[string]struct{}, 1)
	go r.aggregate(batches, seed, result)

	jobs := make(chan string, len(ordered))
	for _, path := range ordered {
		jobs <- path
	}
	close(jobs)

	var wg sync.WaitGroup
	r.startProducers(jobs, batches, &wg)
	wg.Wait()
	close(batches)

	set := <-result
	r.tracker.Finish()

	// Whether the run completed or was interrupted, write what we have: a
	// partial output plus the checkpoint is always recoverable.
	if err := writeOutput(args.OutputFile, set); err != nil {
		return err
	}
	if err := prog.Save(); err != nil {
		logger.Error("Failed to save final checkpoint", zap.Error(err))
	}

	interrupted := coord.ShouldStop()
	logger.Info("Merge finished",
		zap.Int("uniqueLines", len(set)),
		zap.Int64("totalLines", r.totalLines.Load()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("interrupted", interrupted))
	logger.Info("Encoding summary", zap.String("summary", stats.Summary()))

	if interrupted && args.ProgressFile != "" {
		logger.Info("Run was interrupted; resume with the checkpoint",
			zap.String("progressFile", args.ProgressFile))
	}
	return nil
}

// readInputList reads one input path per line, ignoring blank lines.
func readInputList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// filterProcessed removes already-completed paths from the input list and
// verifies the checkpoint still matches it: a recorded file missing from the
// list means the inputs changed and the checkpoint cannot be trusted.
func filterProcessed(all []string, prog *progress.State) ([]string, error) {
	listed := make(map[string]struct{}, len(all))
	for _, p := range all {
		listed[p] = struct{}{}
	}
	for p := range prog.ProcessedSet() {
		if _, ok := listed[p]; !ok {
			return nil, fmt.Errorf("%w: processed file %s is no longer in the input list", ErrResume, p)
		}
	}

	remaining := make([]string, 0, len(all))
	for _, p := range all {
		if !prog.IsProcessed(p) {
			remaining = append(remaining, p)
		}
	}
	return remaining, nil
}

// collectMetadata stats the input files concurrently. Files that cannot be
// statted are logged and dropped; they would fail at open time anyway.
func collectMetadata(paths []string, errlog *logging.ErrorLog, logger *zap.Logger) []FileDescriptor {
	descriptors := make([]FileDescriptor, len(paths))
	valid := make([]bool, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(metadataParallelism)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			info, err := os.Stat(path)
			if err != nil {
				logger.Warn("Cannot access input file", zap.String("file", path), zap.Error(err))
				if logErr := errlog.Logf("error accessing file %s: %v", path, err); logErr != nil {
					logger.Error("Failed to write error log", zap.Error(logErr))
				}
				return nil
			}
			descriptors[i] = FileDescriptor{Path: path, Size: info.Size()}
			valid[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]FileDescriptor, 0, len(paths))
	for i, ok := range valid {
		if ok {
			out = append(out, descriptors[i])
		}
	}
	return out
}

// seedFromOutput reloads the partial output of an interrupted run so the
// lines contributed by already-processed files survive the resume. The dedup
// set itself is never persisted; the previous run's output stands in for it.
func seedFromOutput(path string, logger *zap.Logger) map[string]struct{} {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Cannot read previous output, starting with an empty set",
				zap.String("file", path), zap.Error(err))
		}
		return nil
	}
	defer f.Close()

	set := make(map[string]struct{}, batchSizeHint)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			set[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("Error reading previous output", zap.String("file", path), zap.Error(err))
	}

	logger.Info("Seeded dedup set from previous output",
		zap.String("file", path), zap.Int("lines", len(set)))
	return set
}
