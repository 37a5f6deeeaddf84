package merge

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"wordmerge/pkg/encoding"
)

// errBinaryFile marks inputs skipped because they look like binary data.
var errBinaryFile = errors.New("file appears to be binary")

// startProducers launches the bounded ingestion pool. Workers pull file
// paths from jobs until it is drained or shutdown is requested.
func (r *Runner) startProducers(jobs <-chan string, batches chan<- LineBatch, wg *sync.WaitGroup) {
	r.logger.Debug("Starting ingestion worker pool", zap.Int("workers", r.args.Threads))
	for w := 0; w < r.args.Threads; w++ {
		wg.Add(1)
		workerLogger := r.logger.With(zap.Int("workerID", w))
		go r.producerWorker(jobs, batches, wg, workerLogger)
	}
}

// producerWorker processes one file at a time. The shutdown flag is checked
// before each file: once set, no new work starts, but the file in flight is
// already complete by construction of the loop.
func (r *Runner) producerWorker(jobs <-chan string, batches chan<- LineBatch, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for path := range jobs {
		if r.coord.ShouldStop() {
			logger.Debug("Shutdown requested, worker stopping")
			return
		}

		logger.Debug("Processing file", zap.String("file", path))
		lines, err := r.ingestFile(path, batches, logger)
		if err != nil {
			if errors.Is(err, ErrChannel) {
				logger.Error("Pipeline failure, worker stopping", zap.Error(err))
				return
			}
			// Per-file failures never abort the run; the file is recorded in
			// the error log and skipped.
			logger.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			if logErr := r.errlog.Logf("error processing file %s: %v", path, err); logErr != nil {
				logger.Error("Failed to write error log", zap.Error(logErr))
			}
			continue
		}

		// The file is fully ingested; record it atomically so a resumed run
		// never re-reads it. Partial files are never recorded.
		if err := r.prog.MarkProcessed(path, lines); err != nil {
			logger.Error("Failed to save checkpoint", zap.String("file", path), zap.Error(err))
		}
		r.tracker.FileDone()

		fileDone := logger.Debug
		if r.args.Verbose {
			fileDone = logger.Info
		}
		fileDone("File processed", zap.String("file", path), zap.Int64("lines", lines))
	}
}

// ingestFile streams one file through encoding resolution and conversion,
// accumulating unique trimmed lines into capacity-bounded batches that are
// handed to the aggregator. Returns the number of non-empty lines read.
func (r *Runner) ingestFile(path string, batches chan<- LineBatch, logger *zap.Logger) (int64, error) {
	if binary, err := encoding.IsLikelyBinary(path); err != nil {
		return 0, err
	} else if binary {
		return 0, errBinaryFile
	}

	profile, err := r.enc.Resolve(path)
	if err != nil {
		return 0, err
	}

	reader, err := encoding.NewLineReader(path, profile)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	hint := r.batchCapacity
	if hint > batchSizeHint {
		hint = batchSizeHint
	}

	batch := make(LineBatch, hint)
	var lines, lastFlush int64

	for reader.Scan() {
		line := reader.Text()
		if line == "" {
			continue
		}
		batch[line] = struct{}{}
		lines++

		if len(batch) >= r.batchCapacity || reader.BytesRead()-lastFlush >= chunkByteLimit {
			if err := r.sendBatch(batches, batch); err != nil {
				return lines, err
			}
			batch = make(LineBatch, hint)
			lastFlush = reader.BytesRead()
		}
	}
	if err := reader.Err(); err != nil {
		return lines, fmt.Errorf("failed reading %s: %w", path, err)
	}
	if len(batch) > 0 {
		if err := r.sendBatch(batches, batch); err != nil {
			return lines, err
		}
	}

	r.totalLines.Add(lines)
	r.stats.AddBytes(reader.BytesRead())
	if n := reader.Replacements(); n > 0 {
		r.stats.AddReplacements(n)
		logger.Warn("Decoding produced replacement characters",
			zap.String("file", path),
			zap.String("encoding", profile.Name),
			zap.Int64("replacements", n))
	}

	return lines, nil
}

// sendBatch hands a batch to the aggregator. A send on a torn-down pipeline
// surfaces as ErrChannel instead of crashing the worker.
func (r *Runner) sendBatch(batches chan<- LineBatch, b LineBatch) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrChannel, rec)
		}
	}()
	batches <- b
	return nil
}
