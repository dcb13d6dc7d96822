package lookup

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_CommitFirstWriterWins(t *testing.T) {
	c := NewCache[int, string]()

	v, wrote := c.Commit(1, "first")
	assert.True(t, wrote)
	assert.Equal(t, "first", v)

	v, wrote = c.Commit(1, "second")
	assert.False(t, wrote)
	assert.Equal(t, "first", v)

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "first", got)

	_, ok = c.Get(2)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ConcurrentCommitsWriteOnce(t *testing.T) {
	c := NewCache[string, int]()

	const workers = 32
	var (
		wg      sync.WaitGroup
		writes  atomic.Int32
		winners = make([]int, workers)
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, wrote := c.Commit("market", i)
			if wrote {
				writes.Add(1)
			}
			winners[i] = v
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), writes.Load())
	final, _ := c.Get("market")
	for _, w := range winners {
		assert.Equal(t, final, w)
	}
}

func TestCached(t *testing.T) {
	c := NewCache[string, []int]()
	var calls atomic.Int32
	fetch := func(_ context.Context, key string) ([]int, error) {
		calls.Add(1)
		return []int{len(key)}, nil
	}

	v, err := Cached(context.Background(), c, "abc", fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, v)

	v, err = Cached(context.Background(), c, "abc", fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	c := NewCache[string, int]()
	boom := errors.New("boom")
	fail := true
	fetch := func(_ context.Context, _ string) (int, error) {
		if fail {
			return 0, boom
		}
		return 42, nil
	}

	_, err := Cached(context.Background(), c, "k", fetch)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	fail = false
	v, err := Cached(context.Background(), c, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestCached_ConcurrentMissesAgree(t *testing.T) {
	c := NewCache[string, int]()
	var (
		calls atomic.Int32
		start = make(chan struct{})
	)
	fetch := func(_ context.Context, _ string) (int, error) {
		n := calls.Add(1)
		<-start
		return int(n), nil
	}

	const workers = 8
	results := make([]int, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Cached(context.Background(), c, "k", fetch)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	require.Eventually(t, func() bool { return calls.Load() == workers }, time.Second, time.Millisecond)
	close(start)
	wg.Wait()

	assert.Equal(t, 1, c.Len())
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}
