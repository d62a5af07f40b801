package waveshare

import (
	"time"

	"epaper/pkg/flow"
)

type Option func(e *EPaper)

// WithThreshold sets the backlog in bytes that forces a drain after a send.
func WithThreshold(n int) Option {
	return func(e *EPaper) {
		e.flowOpts = append(e.flowOpts, flow.WithThreshold(n))
	}
}

// WithDrainTimeout bounds the drain triggered by the threshold.
func WithDrainTimeout(d time.Duration) Option {
	return func(e *EPaper) {
		e.drainTimeout = d
	}
}

func WithSyncChunk(n int) Option {
	return func(e *EPaper) {
		e.flowOpts = append(e.flowOpts, flow.WithChunk(n))
	}
}
