package flow

type Option func(c *Controller)

// WithThreshold sets the backlog at which Sent asks for a drain.
func WithThreshold(n int) Option {
	return func(c *Controller) {
		c.threshold = n
	}
}

// WithChunk sets the read size used by Sync.
func WithChunk(n int) Option {
	return func(c *Controller) {
		c.chunk = n
	}
}
