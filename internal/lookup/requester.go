package lookup

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/alexzk1/ed-fc-companion/internal/config"
)

// Requester errors.
var (
	ErrPollTimeout = errors.New("lookup: no result within poll cap")
	ErrStale       = errors.New("lookup: superseded by a newer request")
)

// PollConfig controls result delivery and polling.
type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
	Buffer      int
}

// DefaultPollConfig polls every 100ms for at most 60 attempts through a
// buffer of 5.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Interval:    config.DefaultPollInterval,
		MaxAttempts: config.DefaultMaxAttempts,
		Buffer:      config.DefaultDeliveryBuffer,
	}
}

// PollConfigFrom returns the polling settings of a lookup config section.
func PollConfigFrom(c config.LookupConfig) PollConfig {
	return PollConfig{Interval: c.PollInterval, MaxAttempts: c.MaxAttempts, Buffer: c.Buffer}
}

func (c PollConfig) normalized() PollConfig {
	d := DefaultPollConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.Buffer < 1 {
		c.Buffer = d.Buffer
	}
	return c
}

// Status is the state of a polled request.
type Status uint8

const (
	// Pending means no result has arrived yet.
	Pending Status = iota
	// Ready means the fetch finished; Outcome.OK tells whether it succeeded.
	Ready
	// TimedOut means the poll cap was reached without a result.
	TimedOut
	// Stale means a newer Submit owns the requester.
	Stale
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case TimedOut:
		return "timed_out"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Outcome is the result of one Poll.
type Outcome[V any] struct {
	Status Status
	Value  V
	// OK is false for a Ready outcome whose fetch failed; Err holds why.
	OK       bool
	Err      error
	Attempts int
}

// Done reports whether the request will not change any more.
func (o Outcome[V]) Done() bool { return o.Status != Pending }

// Handle identifies one Submit.
type Handle[K comparable] struct {
	ID         ulid.ULID
	Key        K
	generation uint64
}

type delivery[V any] struct {
	generation uint64
	value      V
	err        error
}

// Requester runs one logical request at a time. Submit may be called from
// any goroutine; Poll is meant for the UI goroutine.
type Requester[K comparable, V any] struct {
	fetch   FetchFunc[K, V]
	cfg     PollConfig
	logger  zerolog.Logger
	results chan delivery[V]

	mu         sync.Mutex
	generation uint64
	attempts   int
	final      *Outcome[V]
}

// NewRequester returns a requester running fetch in the background.
func NewRequester[K comparable, V any](fetch FetchFunc[K, V], cfg PollConfig, logger zerolog.Logger) *Requester[K, V] {
	cfg = cfg.normalized()
	return &Requester[K, V]{
		fetch:   fetch,
		cfg:     cfg,
		logger:  logger.With().Str("component", "lookup").Logger(),
		results: make(chan delivery[V], cfg.Buffer),
	}
}

// Config returns the effective polling settings.
func (r *Requester[K, V]) Config() PollConfig { return r.cfg }

// Submit starts fetching key in the background and returns its handle.
// Handles from earlier submits become stale.
func (r *Requester[K, V]) Submit(ctx context.Context, key K) Handle[K] {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.attempts = 0
	r.final = nil
	r.mu.Unlock()

	h := Handle[K]{ID: ulid.Make(), Key: key, generation: gen}
	logger := r.logger.With().Str("request_id", h.ID.String()).Interface("key", key).Logger()
	logger.Debug().Msg("lookup submitted")

	go func() {
		v, err := r.fetch(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Msg("lookup fetch failed")
		}
		select {
		case r.results <- delivery[V]{generation: gen, value: v, err: err}:
		default:
			logger.Warn().Int("buffer", r.cfg.Buffer).Msg("lookup delivery buffer full, result dropped")
		}
	}()
	return h
}

// Poll checks for h's result without blocking. Every call on a pending
// request counts as one attempt; the call reaching MaxAttempts without a
// result reports TimedOut. Results of superseded submits are discarded.
// Once a request is done, Poll keeps returning the same outcome.
func (r *Requester[K, V]) Poll(h Handle[K]) Outcome[V] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.generation != r.generation {
		return Outcome[V]{Status: Stale, Err: ErrStale}
	}
	if r.final != nil {
		return *r.final
	}

	r.attempts++
	for {
		var d delivery[V]
		select {
		case d = <-r.results:
		default:
			return r.pendingOrTimeout(h)
		}
		if d.generation != r.generation {
			r.logger.Debug().Uint64("generation", d.generation).Msg("stale lookup result discarded")
			continue
		}
		out := Outcome[V]{Status: Ready, Value: d.value, OK: d.err == nil, Err: d.err, Attempts: r.attempts}
		r.final = &out
		return out
	}
}

func (r *Requester[K, V]) pendingOrTimeout(h Handle[K]) Outcome[V] {
	if r.attempts < r.cfg.MaxAttempts {
		return Outcome[V]{Status: Pending, Attempts: r.attempts}
	}
	r.logger.Warn().
		Str("request_id", h.ID.String()).
		Int("attempts", r.attempts).
		Msg("lookup abandoned, no result within poll cap")
	out := Outcome[V]{Status: TimedOut, Err: ErrPollTimeout, Attempts: r.attempts}
	r.final = &out
	return out
}

// Await polls h every interval until it is done or ctx ends. It is the
// blocking counterpart of Poll for command-line callers.
func (r *Requester[K, V]) Await(ctx context.Context, h Handle[K]) (V, error) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	var zero V
	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-ticker.C:
		}
		out := r.Poll(h)
		if !out.Done() {
			continue
		}
		if out.Err != nil {
			return zero, out.Err
		}
		return out.Value, nil
	}
}
