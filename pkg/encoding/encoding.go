package encoding

import (
	"go.uber.org/zap"
)

// Handler resolves file encodings according to a strategy and records what
// happened in the shared statistics collector. One handler serves a whole
// run; Resolve is safe for concurrent use.
type Handler struct {
	strategy Strategy
	stats    *Stats
	logger   *zap.Logger
}

// NewHandler builds a handler for the given strategy.
func NewHandler(strategy Strategy, stats *Stats, logger *zap.Logger) *Handler {
	return &Handler{strategy: strategy, stats: stats, logger: logger}
}

// Stats exposes the handler's statistics collector.
func (h *Handler) Stats() *Stats {
	return h.stats
}

// Resolve determines the encoding profile for the file at path. It only
// fails on filesystem errors; every readable file resolves to an encoding.
func (h *Handler) Resolve(path string) (Profile, error) {
	var (
		profile Profile
		err     error
	)

	switch h.strategy.Mode {
	case ModeForce:
		profile = Profile{Candidate: h.strategy.Forced, Basis: BasisForced}
		h.logger.Debug("Using forced encoding",
			zap.String("file", path),
			zap.String("encoding", profile.Name))

	case ModeSequence:
		profile, err = h.resolveSequence(path)

	default: // ModeAuto
		profile, err = Detect(path)
		if err == nil {
			h.logger.Debug("Resolved encoding",
				zap.String("file", path),
				zap.String("encoding", profile.Name),
				zap.String("basis", string(profile.Basis)))
		}
	}

	if err != nil {
		return Profile{}, err
	}
	h.stats.RecordProfile(profile)
	return profile, nil
}

// resolveSequence validates candidates in order and accepts the first that
// decodes the file's sample cleanly, defaulting to the legacy encoding.
func (h *Handler) resolveSequence(path string) (Profile, error) {
	for _, cand := range h.strategy.Sequence {
		ok, err := ValidateFile(path, cand)
		if err != nil {
			return Profile{}, err
		}
		if ok {
			h.logger.Debug("Validated encoding from sequence",
				zap.String("file", path),
				zap.String("encoding", cand.Name))
			return Profile{Candidate: cand, Basis: BasisDetected}, nil
		}
	}
	h.logger.Debug("No encoding in sequence validated, using legacy default",
		zap.String("file", path),
		zap.String("encoding", DefaultLegacy().Name))
	return Profile{Candidate: DefaultLegacy(), Basis: BasisFallback}, nil
}
