package evergreen

import (
	"time"

	"github.com/charmbracelet/log"
)

// frameStats holds per-frame timing and draw metrics.
// Only populated when debug mode is on.
type frameStats struct {
	advanceTime  time.Duration
	emitTime     time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
	batchCount   int
	drawCalls    int
	uploads      int
}

// SetDebugMode turns frame statistics on or off. Enabling it also lowers the
// scene logger to debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		s.logger.SetLevel(log.DebugLevel)
	}
}

// DebugMode reports whether frame statistics are collected.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// debugLog writes one line of frame statistics through the scene logger.
func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	total := stats.advanceTime + stats.emitTime + stats.sortTime + stats.submitTime
	s.logger.Debug("frame",
		"n", s.frame,
		"advance", stats.advanceTime,
		"project", stats.emitTime,
		"sort", stats.sortTime,
		"submit", stats.submitTime,
		"total", total,
		"commands", stats.commandCount,
		"batches", stats.batchCount,
		"draws", stats.drawCalls,
		"uploads", stats.uploads)
}
