package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedFetch returns values[key] once gates[key] is closed.
type gatedFetch struct {
	gates  map[string]chan struct{}
	values map[string]int
}

func newGatedFetch(keys ...string) *gatedFetch {
	g := &gatedFetch{gates: map[string]chan struct{}{}, values: map[string]int{}}
	for i, k := range keys {
		g.gates[k] = make(chan struct{})
		g.values[k] = i + 1
	}
	return g
}

func (g *gatedFetch) fetch(ctx context.Context, key string) (int, error) {
	select {
	case <-g.gates[key]:
		return g.values[key], nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

func TestRequester_Ready(t *testing.T) {
	g := newGatedFetch("sol")
	r := NewRequester(g.fetch, PollConfig{Interval: time.Millisecond, MaxAttempts: 100000, Buffer: 5}, zerolog.Nop())

	h := r.Submit(testContext(t), "sol")
	assert.Equal(t, "sol", h.Key)
	assert.NotZero(t, h.ID)

	first := r.Poll(h)
	assert.Equal(t, Pending, first.Status)
	assert.Equal(t, 1, first.Attempts)

	close(g.gates["sol"])
	var out Outcome[int]
	require.Eventually(t, func() bool {
		out = r.Poll(h)
		return out.Done()
	}, time.Second, time.Millisecond)

	assert.Equal(t, Ready, out.Status)
	assert.True(t, out.OK)
	assert.Equal(t, 1, out.Value)
	require.NoError(t, out.Err)

	// A finished request keeps reporting the same outcome.
	assert.Equal(t, out, r.Poll(h))
}

func TestRequester_TimesOutAfterExactlyMaxAttempts(t *testing.T) {
	g := newGatedFetch("never")
	cfg := PollConfig{Interval: 100 * time.Millisecond, MaxAttempts: 60, Buffer: 5}
	r := NewRequester(g.fetch, cfg, zerolog.Nop())
	h := r.Submit(testContext(t), "never")

	for i := 1; i < 60; i++ {
		out := r.Poll(h)
		require.Equal(t, Pending, out.Status, "attempt %d", i)
		require.Equal(t, i, out.Attempts)
	}
	out := r.Poll(h)
	assert.Equal(t, TimedOut, out.Status)
	assert.Equal(t, 60, out.Attempts)
	require.ErrorIs(t, out.Err, ErrPollTimeout)

	// At 100ms per attempt the cap is reached at 6s of polling.
	assert.Equal(t, 6*time.Second, time.Duration(out.Attempts)*cfg.Interval)

	// A late result does not revive the abandoned request.
	close(g.gates["never"])
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, TimedOut, r.Poll(h).Status)
}

func TestRequester_EmptyResultIsNotATimeout(t *testing.T) {
	empty := func(_ context.Context, _ string) (map[int]struct{}, error) {
		return map[int]struct{}{}, nil
	}
	r := NewRequester(empty, PollConfig{Interval: time.Millisecond, MaxAttempts: 100000}, zerolog.Nop())
	h := r.Submit(testContext(t), "market")

	var out Outcome[map[int]struct{}]
	require.Eventually(t, func() bool {
		out = r.Poll(h)
		return out.Done()
	}, time.Second, time.Millisecond)

	assert.Equal(t, Ready, out.Status)
	assert.True(t, out.OK)
	assert.Empty(t, out.Value)
	assert.NoError(t, out.Err)
}

func TestRequester_FetchErrorIsReadyWithoutValue(t *testing.T) {
	boom := errors.New("edsm down")
	failing := func(_ context.Context, _ string) (int, error) { return 0, boom }
	r := NewRequester(failing, PollConfig{Interval: time.Millisecond, MaxAttempts: 100000}, zerolog.Nop())
	h := r.Submit(testContext(t), "x")

	var out Outcome[int]
	require.Eventually(t, func() bool {
		out = r.Poll(h)
		return out.Done()
	}, time.Second, time.Millisecond)

	assert.Equal(t, Ready, out.Status)
	assert.False(t, out.OK)
	require.ErrorIs(t, out.Err, boom)
	assert.NotErrorIs(t, out.Err, ErrPollTimeout)
}

func TestRequester_NewSubmitMakesOldHandleStale(t *testing.T) {
	g := newGatedFetch("old", "new")
	r := NewRequester(g.fetch, PollConfig{Interval: time.Millisecond, MaxAttempts: 100000, Buffer: 5}, zerolog.Nop())
	ctx := testContext(t)

	oldH := r.Submit(ctx, "old")
	newH := r.Submit(ctx, "new")

	out := r.Poll(oldH)
	assert.Equal(t, Stale, out.Status)
	require.ErrorIs(t, out.Err, ErrStale)

	// The old result arrives first and must be drained, not delivered.
	close(g.gates["old"])
	require.Eventually(t, func() bool { return len(r.results) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, Pending, r.Poll(newH).Status)
	assert.Empty(t, r.results)

	close(g.gates["new"])
	var got Outcome[int]
	require.Eventually(t, func() bool {
		got = r.Poll(newH)
		return got.Done()
	}, time.Second, time.Millisecond)
	assert.Equal(t, Ready, got.Status)
	assert.Equal(t, 2, got.Value)
}

func TestRequester_FullBufferDropsResult(t *testing.T) {
	g := newGatedFetch("a", "b")
	r := NewRequester(g.fetch, PollConfig{Interval: time.Millisecond, MaxAttempts: 3, Buffer: 1}, zerolog.Nop())
	ctx := testContext(t)

	r.Submit(ctx, "a")
	close(g.gates["a"])
	require.Eventually(t, func() bool { return len(r.results) == 1 }, time.Second, time.Millisecond)

	// With the buffer full of a's result, b's delivery is dropped.
	h := r.Submit(ctx, "b")
	close(g.gates["b"])
	time.Sleep(20 * time.Millisecond)

	var out Outcome[int]
	for range 3 {
		out = r.Poll(h)
	}
	assert.Equal(t, TimedOut, out.Status)
}

func TestRequester_Await(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		g := newGatedFetch("sol")
		close(g.gates["sol"])
		r := NewRequester(g.fetch, PollConfig{Interval: time.Millisecond, MaxAttempts: 1000}, zerolog.Nop())
		ctx := testContext(t)

		v, err := r.Await(ctx, r.Submit(ctx, "sol"))
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("timeout is not early", func(t *testing.T) {
		g := newGatedFetch("never")
		cfg := PollConfig{Interval: 5 * time.Millisecond, MaxAttempts: 20}
		r := NewRequester(g.fetch, cfg, zerolog.Nop())
		ctx := testContext(t)

		start := time.Now()
		_, err := r.Await(ctx, r.Submit(ctx, "never"))
		require.ErrorIs(t, err, ErrPollTimeout)
		assert.GreaterOrEqual(t, time.Since(start), 20*cfg.Interval)
	})

	t.Run("context cancelled", func(t *testing.T) {
		g := newGatedFetch("never")
		r := NewRequester(g.fetch, PollConfig{Interval: time.Millisecond, MaxAttempts: 100000}, zerolog.Nop())
		ctx, cancel := context.WithCancel(context.Background())
		h := r.Submit(ctx, "never")
		cancel()

		_, err := r.Await(ctx, h)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestPollConfig(t *testing.T) {
	d := DefaultPollConfig()
	assert.Equal(t, 100*time.Millisecond, d.Interval)
	assert.Equal(t, 60, d.MaxAttempts)
	assert.Equal(t, 5, d.Buffer)

	assert.Equal(t, d, PollConfig{}.normalized())
	assert.Equal(t, "timed_out", TimedOut.String())
}
