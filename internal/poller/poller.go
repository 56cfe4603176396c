// Package poller implements the bounded fixed-interval polling loop
// used to wait on remote job status. The transition function is pure;
// the loop injects a clock so the interval and attempt bound are
// testable parameters.
package poller

import (
	"context"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/logger"
	"github.com/rs/zerolog"
)

// State is the observed state of the remote job, already normalized by
// the probe. Anything a probe cannot classify should map to
// StateUnknown, which is treated like StatePending.
type State int

const (
	StatePending State = iota
	StateDone
	StateFailed
	StateUnknown
)

// Step is the decision after one observation.
type Step int

const (
	StepContinue Step = iota
	StepCompleted
	StepFailed
	StepTimedOut
)

// Outcome is the terminal resolution of a full polling run. TimedOut
// means the attempt bound was exhausted, not that the job failed; the
// job may still be running in the background.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeFailed
	OutcomeTimedOut
)

// Next is the transition function. attempt is the number of
// observations already made including the current one.
func Next(state State, attempt, maxAttempts int) Step {
	switch state {
	case StateDone:
		return StepCompleted
	case StateFailed:
		return StepFailed
	default:
		if attempt >= maxAttempts {
			return StepTimedOut
		}
		return StepContinue
	}
}

// Probe performs one status observation. A transport error is not
// terminal: the loop counts the attempt and retries on the next tick.
type Probe func(ctx context.Context) (State, error)

type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

type Poller struct {
	interval    time.Duration
	maxAttempts int
	clock       Clock
	log         zerolog.Logger
}

func New(cfg config.PollerConfig) *Poller {
	return &Poller{
		interval:    cfg.Interval,
		maxAttempts: cfg.MaxAttempts,
		clock:       realClock{},
		log:         logger.Get(),
	}
}

// WithClock swaps the timer source, used by tests.
func (p *Poller) WithClock(c Clock) *Poller {
	p.clock = c
	return p
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

func (p *Poller) MaxAttempts() int {
	return p.maxAttempts
}

// Run polls probe at a fixed interval until it reaches a terminal step.
// Probes are strictly sequential: the next one is scheduled only after
// the previous one resolves. Navigating away is modelled by cancelling
// ctx, which stops the loop without touching the remote job.
func (p *Poller) Run(ctx context.Context, probe Probe) (Outcome, error) {
	for attempt := 1; ; attempt++ {
		state, err := probe(ctx)
		if err != nil {
			p.log.Warn().Err(err).Int("attempt", attempt).Msg("Status probe failed, will retry on next tick")
			state = StateUnknown
		}

		switch Next(state, attempt, p.maxAttempts) {
		case StepCompleted:
			return OutcomeCompleted, nil
		case StepFailed:
			return OutcomeFailed, nil
		case StepTimedOut:
			p.log.Info().Int("attempts", attempt).Msg("Polling budget exhausted, job may still be running")
			return OutcomeTimedOut, nil
		}

		select {
		case <-ctx.Done():
			return OutcomeTimedOut, ctx.Err()
		case <-p.clock.After(p.interval):
		}
	}
}
