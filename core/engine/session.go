// Package engine - Estimation session
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"print-cost/core/pricing"
	"print-cost/core/types"
)

// DefaultQuiescence is how long a spec must stay unchanged before a
// delegated estimation starts. Edits reset the window so the remote
// service is not flooded while the customer is still typing.
const DefaultQuiescence = time.Second

// Update is delivered to the session's observer after every state change
type Update struct {
	// State is the session state after the transition
	State State

	// Generation identifies the spec version the update belongs to
	Generation uint64

	// Result is set in StateEstimated
	Result *types.EstimationResult

	// FieldErrors is set in StateInvalid
	FieldErrors types.ValidationErrors

	// Err is set in StateFailed
	Err error
}

// Session wraps the synchronous pipeline with request/response semantics
// for the remote pricing path. Staleness is decided by a generation
// counter: each mutation increments the generation and a response is
// applied only if its generation still matches. Nothing is retried
// internally; a Failed state is the caller's decision point.
type Session struct {
	mu sync.Mutex

	estimator  *Estimator
	remote     RemotePricer
	quiescence time.Duration
	logger     *zap.Logger

	state      State
	generation uint64
	result     *types.EstimationResult
	lastErr    error
	fieldErrs  types.ValidationErrors
	timer      *time.Timer

	observer func(Update)
}

// NewSession creates a session. remote may be nil, in which case the
// local pipeline prices immediately after the quiescence window.
func NewSession(estimator *Estimator, remote RemotePricer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		estimator:  estimator,
		remote:     remote,
		quiescence: DefaultQuiescence,
		logger:     logger,
		state:      StateIdle,
	}
}

// WithQuiescence overrides the debounce window. Zero estimates
// immediately on every mutation.
func (s *Session) WithQuiescence(d time.Duration) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiescence = d
	return s
}

// Observe registers the observer called after every state change
func (s *Session) Observe(fn func(Update)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns the current spec version
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Result returns the last successful estimate, nil unless Estimated
func (s *Session) Result() *types.EstimationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEstimated {
		return nil
	}
	return s.result
}

// FieldErrors returns the field mapping of the last invalid mutation
func (s *Session) FieldErrors() types.ValidationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fieldErrs
}

// Err returns the failure of the last estimation run, nil unless Failed
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFailed {
		return nil
	}
	return s.lastErr
}

// Mutate submits a new spec version. Validation runs synchronously; an
// invalid spec cancels any pending estimation outright. A valid spec
// schedules an estimation after the quiescence window, replacing any
// previously scheduled run.
func (s *Session) Mutate(spec types.ProductJobSpec, stock *types.StockCatalogSnapshot, policy *pricing.Policy) {
	s.mu.Lock()

	s.generation++
	gen := s.generation
	s.state = StateValidating
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	errs := s.estimator.Validate(&spec, stock)
	if !errs.IsValid() {
		s.state = StateInvalid
		s.fieldErrs = errs
		s.result = nil
		observer := s.observer
		s.mu.Unlock()

		s.logger.Debug("spec invalid, estimation cancelled",
			zap.Uint64("generation", gen),
			zap.Strings("fields", errs.Fields()))
		if observer != nil {
			observer(Update{State: StateInvalid, Generation: gen, FieldErrors: errs})
		}
		return
	}

	s.state = StateEstimating
	s.fieldErrs = nil
	quiescence := s.quiescence

	run := func() { s.run(gen, spec, stock, policy) }
	if quiescence <= 0 {
		s.mu.Unlock()
		run()
		return
	}
	s.timer = time.AfterFunc(quiescence, run)
	s.mu.Unlock()
}

// run executes one estimation for a specific generation and applies the
// outcome only if that generation is still the latest (last write wins).
func (s *Session) run(gen uint64, spec types.ProductJobSpec, stock *types.StockCatalogSnapshot, policy *pricing.Policy) {
	var result *types.EstimationResult
	var err error

	if s.remote != nil {
		result, err = s.estimator.EstimateRemote(context.Background(), s.remote, &spec, stock)
	} else {
		result, err = s.estimator.Estimate(&spec, stock, policy)
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("dropping stale estimation response",
			zap.Uint64("generation", gen))
		return
	}

	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.result = nil
	} else {
		s.state = StateEstimated
		s.result = result
		s.lastErr = nil
	}
	observer := s.observer
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("estimation failed",
			zap.Uint64("generation", gen),
			zap.Error(err))
		if observer != nil {
			observer(Update{State: StateFailed, Generation: gen, Err: err})
		}
		return
	}

	s.logger.Debug("estimation complete",
		zap.Uint64("generation", gen),
		zap.String("total", result.Total.String()))
	if observer != nil {
		observer(Update{State: StateEstimated, Generation: gen, Result: result})
	}
}
