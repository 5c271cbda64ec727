package infra

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuito abierto: servicio externo no disponible")

// CircuitBreaker guards a flaky external dependency (SMTP). After
// maxFailures consecutive failures the circuit opens and calls fail fast
// until cooldown elapses; the next call is the probe.
type CircuitBreaker struct {
	mu          sync.Mutex
	failures    int
	maxFailures int
	cooldown    time.Duration
	openedAt    time.Time
}

func NewCircuitBreaker(maxFailures int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{maxFailures: maxFailures, cooldown: cooldown}
}

func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.failures >= cb.maxFailures {
		if time.Since(cb.openedAt) < cb.cooldown {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		// half-open: let one probe through
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		if cb.failures >= cb.maxFailures {
			cb.openedAt = time.Now()
		}
		return err
	}
	cb.failures = 0
	return nil
}
