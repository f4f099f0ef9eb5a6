package backend

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AuroraMediaLabs/pipedash/logger"
	"github.com/AuroraMediaLabs/pipedash/metrics"
)

// DefaultPollInterval is the progress polling cadence when streaming is
// unavailable.
const DefaultPollInterval = 2 * time.Second

// Tracker follows a submitted job's progress until it reaches a terminal
// state. It prefers the server-push stream and falls back to interval
// polling when the stream cannot be established or drops mid-job, so at
// least one delivery mechanism is active while the job is live.
//
// A Tracker owns at most one subscription: starting a new one cancels the
// previous. Stop must be called when the tracking view is left, otherwise
// the poll timer or stream connection leaks.
type Tracker struct {
	client   *Client
	interval time.Duration

	mu     sync.Mutex
	jobID  string
	cancel context.CancelFunc
	done   chan struct{}
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithPollInterval overrides the polling cadence.
func WithPollInterval(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// NewTracker creates a tracker over the given client.
func NewTracker(client *Client, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		client:   client,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins following the given job's progress and returns a channel of
// snapshots. The channel closes when the job reaches a terminal state, the
// context is cancelled, or Stop is called. Any previously started
// subscription is cancelled first.
func (t *Tracker) Start(ctx context.Context, jobID string) <-chan *ProgressState {
	t.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.jobID = jobID
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	updates := make(chan *ProgressState, eventBuffer)
	metrics.TrackerStarted()
	go func() {
		defer close(done)
		defer close(updates)
		defer metrics.TrackerStopped()
		defer cancel()
		t.run(ctx, jobID, updates)
	}()
	return updates
}

// Stop cancels the active subscription, if any, and waits for its goroutine
// to finish. Safe to call repeatedly.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// run drives one tracking session: stream first, then polling.
func (t *Tracker) run(ctx context.Context, jobID string, updates chan<- *ProgressState) {
	events, err := t.client.StreamProgress(ctx)
	if err == nil {
		if t.consumeStream(ctx, events, updates) {
			return
		}
		// Stream ended before a terminal event.
	}
	if ctx.Err() != nil {
		return
	}
	logger.StreamFallback(jobID, err)
	metrics.RecordStreamFallback()
	t.poll(ctx, jobID, updates)
}

// consumeStream forwards stream events until the channel closes, reporting
// whether a terminal state was delivered.
func (t *Tracker) consumeStream(ctx context.Context, events <-chan StreamEvent, updates chan<- *ProgressState) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case ev, ok := <-events:
			if !ok {
				return false
			}
			if !t.forward(ctx, ev.State, updates) {
				return true
			}
			if terminal(ev.State) {
				logger.JobTerminal(ev.State.JobID, string(ev.State.Status))
				return true
			}
			if ev.Type == EventComplete || ev.Type == EventIdle {
				return true
			}
		}
	}
}

// poll fetches progress snapshots at the configured interval until the job
// goes terminal or inactive. Individual fetch errors are logged and retried
// on the next cycle; the backend going away mid-job should not kill the
// tracker while the context is still live.
func (t *Tracker) poll(ctx context.Context, jobID string, updates chan<- *ProgressState) {
	limiter := rate.NewLimiter(rate.Every(t.interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		metrics.RecordPollCycle()
		state, err := t.client.Progress(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("progress poll failed", "error", err)
			continue
		}
		if !t.forward(ctx, state, updates) {
			return
		}
		if terminal(state) {
			logger.JobTerminal(jobID, string(state.Status))
			return
		}
		if !state.Active {
			return
		}
	}
}

// forward delivers one snapshot, reporting false when the context is done.
func (t *Tracker) forward(ctx context.Context, state *ProgressState, updates chan<- *ProgressState) bool {
	if state == nil {
		return true
	}
	select {
	case updates <- state:
		return true
	case <-ctx.Done():
		return false
	}
}

func terminal(p *ProgressState) bool {
	return p != nil && p.Status.Terminal()
}
