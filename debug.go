package inkwell

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and population counts.
// Only populated when the runtime is in debug mode.
type debugStats struct {
	layoutTime  time.Duration
	animateTime time.Duration
	hookTime    time.Duration
	animations  int
	presences   int
	observed    int
}

// debugLog writes the frame stats at debug level.
func (r *Runtime) debugLog(f Frame, stats debugStats) {
	if !r.debug {
		return
	}
	logger.Debug("frame",
		zap.Uint64("index", f.Index),
		zap.Float64("time", f.Time),
		zap.Float64("dt", f.Delta),
		zap.Duration("layout", stats.layoutTime),
		zap.Duration("animate", stats.animateTime),
		zap.Duration("hooks", stats.hookTime),
		zap.Duration("total", stats.layoutTime+stats.animateTime+stats.hookTime),
		zap.Int("animations", stats.animations),
		zap.Int("presences", stats.presences),
		zap.Int("observed", stats.observed),
	)
}

// debugMaxPresences is the live-entity count above which a scene is probably
// leaking entities that never receive their exit signal.
const debugMaxPresences = 256

func (r *Runtime) debugCheckPresences() {
	if len(r.presences) > debugMaxPresences {
		logger.Warn("runtime: many live presences; are exit signals being sent?",
			zap.Int("presences", len(r.presences)), zap.Int("threshold", debugMaxPresences))
	}
}
