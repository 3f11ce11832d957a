package markerboard

import (
	"context"
	"sync"
	"time"

	"github.com/phanxgames/markerboard/internal/logging"
)

// DefaultRetryDelay is the pause after a failed poll.
const DefaultRetryDelay = 3 * time.Second

// Listener fetches the next snapshot after version.
type Listener interface {
	Listen(ctx context.Context, version int64) (ViewState, error)
}

// SyncTarget receives snapshots. Apply takes ownership of nu and returns a
// copy of what was installed.
type SyncTarget interface {
	Version() int64
	Apply(nu ViewState) ViewState
}

// Syncer runs the long-poll loop: listen, apply, notify observers, listen
// again. Only one request is ever in flight. It implements suture.Service.
type Syncer struct {
	listener   Listener
	target     SyncTarget
	retryDelay time.Duration
	metrics    *Metrics

	mu        sync.Mutex
	observers []func(ViewState)
}

// NewSyncer returns a Syncer feeding target from listener. A non-positive
// retryDelay selects DefaultRetryDelay.
func NewSyncer(listener Listener, target SyncTarget, retryDelay time.Duration, metrics *Metrics) *Syncer {
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Syncer{
		listener:   listener,
		target:     target,
		retryDelay: retryDelay,
		metrics:    metrics,
	}
}

// OnUpdate registers fn to run after every applied snapshot, before the next
// poll is sent. Observers run on the poll goroutine in registration order.
func (s *Syncer) OnUpdate(fn func(ViewState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Serve polls until ctx is cancelled. Transport and decode failures are
// logged and retried after the fixed delay, forever.
func (s *Syncer) Serve(ctx context.Context) error {
	for {
		version := s.target.Version()
		nu, err := s.listener.Listen(ctx, version)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.metrics.poll(err)
		if err != nil {
			logging.Warn().Err(err).Int64("version", version).Dur("retry_in", s.retryDelay).Msg("poll failed")
			t := time.NewTimer(s.retryDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			continue
		}

		applied := s.target.Apply(nu)
		s.metrics.applied()
		logging.Debug().Int64("version", applied.Version).Int("markers", applied.Len()).Msg("applied snapshot")
		s.notify(applied)
	}
}

func (s *Syncer) notify(st ViewState) {
	s.mu.Lock()
	obs := append([]func(ViewState){}, s.observers...)
	s.mu.Unlock()
	for _, fn := range obs {
		fn(st)
	}
}

// String names the service in supervisor logs.
func (s *Syncer) String() string { return "syncer" }
