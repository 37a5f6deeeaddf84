// Package shutdown coordinates cooperative cancellation. An interrupt signal
// moves the coordinator from Running to ShutdownRequested: the checkpoint is
// saved immediately and a shared flag flips, which workers poll at loop
// boundaries. Nothing is pre-empted; in-flight file and batch work always
// completes so progress is never recorded partially.
package shutdown

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"wordmerge/pkg/progress"
)

// StateValue is the coordinator's lifecycle state.
type StateValue int32

const (
	// Running means no stop has been requested.
	Running StateValue = iota
	// ShutdownRequested means the flag is set and workers are unwinding.
	ShutdownRequested
	// Stopped means the pipeline has fully unwound.
	Stopped
)

// Coordinator listens for interrupt signals and owns the shared shutdown
// flag. The flag is set once per run and never reset.
type Coordinator struct {
	state    atomic.Int32
	flag     atomic.Bool
	signals  chan os.Signal
	done     chan struct{}
	progress *progress.State
	logger   *zap.Logger
}

// NewCoordinator wires a coordinator to the run's progress state.
func NewCoordinator(prog *progress.State, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		signals:  make(chan os.Signal, 1),
		done:     make(chan struct{}),
		progress: prog,
		logger:   logger,
	}
}

// Start installs the signal handler. The first SIGINT/SIGTERM saves the
// checkpoint and then flips the flag; the ordering matters because the
// checkpoint must reflect completed work before workers begin unwinding.
func (c *Coordinator) Start() {
	signal.Notify(c.signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-c.signals:
			c.logger.Info("Received interrupt signal, initiating graceful shutdown",
				zap.String("signal", sig.String()))
			c.requestShutdown()
		case <-c.done:
		}
	}()
}

// RequestShutdown triggers the same transition as an interrupt signal.
// Useful for tests and for fatal-error paths that want a clean unwind.
func (c *Coordinator) RequestShutdown() {
	c.requestShutdown()
}

func (c *Coordinator) requestShutdown() {
	if !c.state.CompareAndSwap(int32(Running), int32(ShutdownRequested)) {
		return
	}
	if err := c.progress.Save(); err != nil {
		c.logger.Error("Failed to save progress during shutdown", zap.Error(err))
	}
	c.flag.Store(true)
}

// ShouldStop is the cooperative cancellation check polled at loop boundaries.
func (c *Coordinator) ShouldStop() bool {
	return c.flag.Load()
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() StateValue {
	return StateValue(c.state.Load())
}

// Stop marks the pipeline as fully unwound and detaches the signal handler.
func (c *Coordinator) Stop() {
	signal.Stop(c.signals)
	close(c.done)
	c.state.Store(int32(Stopped))
}
