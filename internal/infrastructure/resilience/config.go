package resilience

import "time"

// Config tunes the circuit breakers guarding model calls. There is no retry
// policy: a rejected or failed call is reported to the caller as is.
type Config struct {
	Enabled bool
	// MinRequests is how many calls a closed breaker must see in the current
	// window before FailureRatio is evaluated.
	MinRequests    uint32
	FailureRatio   float64
	OpenTimeout    time.Duration
	HalfOpenProbes uint32
}

func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		MinRequests:    10,
		FailureRatio:   0.5,
		OpenTimeout:    30 * time.Second,
		HalfOpenProbes: 2,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinRequests == 0 {
		c.MinRequests = def.MinRequests
	}
	if c.FailureRatio <= 0 || c.FailureRatio > 1 {
		c.FailureRatio = def.FailureRatio
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = def.OpenTimeout
	}
	if c.HalfOpenProbes == 0 {
		c.HalfOpenProbes = def.HalfOpenProbes
	}
	return c
}
