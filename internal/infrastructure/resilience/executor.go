package resilience

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/sony/gobreaker/v2"
)

// FailureFilter reports whether err counts against the breaker. Errors it
// rejects still reach the caller.
type FailureFilter func(err error) bool

// Executor keeps one lazily created circuit breaker per operation name.
type Executor struct {
	cfg Config

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[struct{}]
}

func NewExecutor(cfg Config) *Executor {
	return &Executor{
		cfg:      cfg.withDefaults(),
		breakers: make(map[string]*gobreaker.CircuitBreaker[struct{}]),
	}
}

// Execute calls fn once. With breakers enabled an open circuit rejects the
// call without invoking fn.
func (e *Executor) Execute(ctx context.Context, operation string, fn func(context.Context) error, counts FailureFilter) error {
	if fn == nil {
		return errors.New("resilience: nil operation")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !e.cfg.Enabled {
		return fn(ctx)
	}
	if counts == nil {
		counts = countEveryFailure
	}

	_, err := e.breaker(operationName(operation), counts).Execute(func() (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// States reports the current breaker state per operation, for health output.
func (e *Executor) States() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]string, len(e.breakers))
	for name, breaker := range e.breakers {
		out[name] = breaker.State().String()
	}
	return out
}

func (e *Executor) breaker(name string, counts FailureFilter) *gobreaker.CircuitBreaker[struct{}] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if breaker, ok := e.breakers[name]; ok {
		return breaker
	}

	cfg := e.cfg
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenProbes,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= cfg.MinRequests &&
				float64(c.TotalFailures) >= cfg.FailureRatio*float64(c.Requests)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !counts(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
		},
	})
	e.breakers[name] = breaker
	return breaker
}

// IsCircuitOpen reports whether err is a breaker rejection rather than a
// failure of the call itself.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func operationName(operation string) string {
	if op := strings.TrimSpace(operation); op != "" {
		return op
	}
	return "unknown"
}

func countEveryFailure(error) bool { return true }
