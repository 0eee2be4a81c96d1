package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// NormalizeCircuitBreakerConfig fills unset limits from the defaults and keeps Enabled as given.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// CircuitBreaker guards one upstream dependency. A disabled breaker admits every call.
//
// Closed counts consecutive failures; reaching the threshold opens it. After OpenTimeout the
// breaker admits up to HalfOpenMaxReq probes; that many successes close it, any failure reopens it.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu             sync.Mutex
	state          CircuitState
	failures       int
	openedAt       time.Time
	probes         int
	probeSuccesses int
	onChange       func(from, to CircuitState)
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// OnStateChange registers a callback run after every transition, outside the lock.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Execute runs fn when the breaker admits it and records the outcome.
// isFailure decides which errors count against the dependency; nil counts every error.
func (b *CircuitBreaker) Execute(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	failed := err != nil
	if failed && isFailure != nil {
		failed = isFailure(err)
	}
	b.record(failed)
	return err
}

func (b *CircuitBreaker) Allow() error {
	if !b.cfg.Enabled {
		return nil
	}

	b.mu.Lock()
	var from CircuitState
	changed := false
	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		from, changed = b.state, true
		b.moveLocked(CircuitStateHalfOpen)
	}

	var err error
	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			err = ErrCircuitOpen
		} else {
			b.probes++
		}
	}
	notify := b.onChange
	b.mu.Unlock()

	if changed && notify != nil {
		notify(from, CircuitStateHalfOpen)
	}
	return err
}

func (b *CircuitBreaker) RecordSuccess() { b.record(false) }

func (b *CircuitBreaker) RecordFailure() { b.record(true) }

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) record(failed bool) {
	if !b.cfg.Enabled {
		return
	}

	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		if !failed {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveLocked(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		if failed {
			b.moveLocked(CircuitStateOpen)
			break
		}
		b.probeSuccesses++
		if b.probeSuccesses >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.moveLocked(CircuitStateClosed)
		}
	case CircuitStateOpen:
		if failed {
			b.openedAt = b.now()
		}
	}
	to, notify := b.state, b.onChange
	b.mu.Unlock()

	if from != to && notify != nil {
		notify(from, to)
	}
}

func (b *CircuitBreaker) moveLocked(to CircuitState) {
	b.state = to
	b.probes = 0
	b.probeSuccesses = 0
	switch to {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}
