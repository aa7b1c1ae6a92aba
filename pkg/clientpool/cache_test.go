package clientpool_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/datasource/pkg/cache"
	"github.com/dmitrymomot/datasource/pkg/clientpool"
	"github.com/dmitrymomot/datasource/pkg/logger"
)

func TestEndpointCache_GetOrCreate(t *testing.T) {
	t.Run("miss creates once and hit reuses", func(t *testing.T) {
		dialer := newFakeDialer(t)
		c := clientpool.NewEndpointCache(5, time.Minute, logger.Nop())

		factory := func() (clientpool.RootClient, error) { return dialer.Dial("https://a:9200") }

		first, err := c.GetOrCreate("https://a:9200", factory)
		require.NoError(t, err)
		second, err := c.GetOrCreate("https://a:9200", factory)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, dialer.Creates("https://a:9200"))
		assert.Equal(t, 1, c.Len())
	})

	t.Run("factory error inserts nothing", func(t *testing.T) {
		c := clientpool.NewEndpointCache(5, time.Minute, logger.Nop())
		boom := errors.New("boom")

		_, err := c.GetOrCreate("https://a:9200", func() (clientpool.RootClient, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("keys differing in case are distinct", func(t *testing.T) {
		dialer := newFakeDialer(t)
		c := clientpool.NewEndpointCache(5, time.Minute, logger.Nop())

		for _, endpoint := range []string{"https://Node:9200", "https://node:9200"} {
			_, err := c.GetOrCreate(endpoint, func() (clientpool.RootClient, error) { return dialer.Dial(endpoint) })
			require.NoError(t, err)
		}
		assert.Equal(t, 2, c.Len())
		assert.Len(t, dialer.Roots(), 2)
	})

	t.Run("concurrent misses share one factory call", func(t *testing.T) {
		dialer := newFakeDialer(t)
		dialer.delay = 20 * time.Millisecond
		c := clientpool.NewEndpointCache(5, time.Minute, logger.Nop())

		const workers = 32
		results := make([]clientpool.RootClient, workers)
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				root, err := c.GetOrCreate("https://a:9200", func() (clientpool.RootClient, error) {
					return dialer.Dial("https://a:9200")
				})
				assert.NoError(t, err)
				results[i] = root
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, 1, dialer.Creates("https://a:9200"))
		for _, root := range results {
			assert.Same(t, results[0], root)
		}
		c.Close()
		assert.EqualValues(t, 1, dialer.Roots()[0].closes.Load(), "the single handle is disposed exactly once")
	})
}

func TestEndpointCache_Eviction(t *testing.T) {
	t.Run("capacity eviction disposes the least recently used", func(t *testing.T) {
		dialer := newFakeDialer(t)
		c := clientpool.NewEndpointCache(2, time.Hour, logger.Nop())
		get := func(endpoint string) {
			_, err := c.GetOrCreate(endpoint, func() (clientpool.RootClient, error) { return dialer.Dial(endpoint) })
			require.NoError(t, err)
		}

		get("https://a:9200")
		get("https://b:9200")
		get("https://a:9200")
		get("https://c:9200")
		c.Wait()

		roots := dialer.Roots()
		require.Len(t, roots, 3)
		assert.EqualValues(t, 0, roots[0].closes.Load(), "a was refreshed")
		assert.EqualValues(t, 1, roots[1].closes.Load(), "b was least recently used")
		assert.EqualValues(t, 0, roots[2].closes.Load())
		assert.Equal(t, []string{"https://c:9200", "https://a:9200"}, c.Endpoints())
	})

	t.Run("expired entry is recreated and the old one disposed", func(t *testing.T) {
		clock := newFakeClock()
		dialer := newFakeDialer(t)
		c := clientpool.NewEndpointCache(5, time.Minute, logger.Nop(), cache.WithClock(clock.Now))
		factory := func() (clientpool.RootClient, error) { return dialer.Dial("https://a:9200") }

		first, err := c.GetOrCreate("https://a:9200", factory)
		require.NoError(t, err)

		clock.Advance(30 * time.Second)
		again, err := c.GetOrCreate("https://a:9200", factory)
		require.NoError(t, err)
		assert.Same(t, first, again, "hits inside the ttl reuse the handle")

		clock.Advance(30 * time.Second)
		fresh, err := c.GetOrCreate("https://a:9200", factory)
		require.NoError(t, err)
		c.Wait()

		assert.NotSame(t, first, fresh, "age is counted from insertion, not from the last hit")
		assert.Equal(t, 2, dialer.Creates("https://a:9200"))
		assert.EqualValues(t, 1, dialer.Roots()[0].closes.Load())
	})

	t.Run("sweep disposes expired entries without lookups", func(t *testing.T) {
		clock := newFakeClock()
		dialer := newFakeDialer(t)
		c := clientpool.NewEndpointCache(5, time.Minute, logger.Nop(), cache.WithClock(clock.Now))

		for _, endpoint := range []string{"https://a:9200", "https://b:9200"} {
			_, err := c.GetOrCreate(endpoint, func() (clientpool.RootClient, error) { return dialer.Dial(endpoint) })
			require.NoError(t, err)
		}
		clock.Advance(time.Minute)

		assert.Equal(t, 2, c.Sweep())
		c.Wait()
		assert.Equal(t, 0, c.Len())
		for _, root := range dialer.Roots() {
			assert.EqualValues(t, 1, root.closes.Load())
		}
	})

	t.Run("run sweeps until the context is done", func(t *testing.T) {
		clock := newFakeClock()
		dialer := newFakeDialer(t)
		c := clientpool.NewEndpointCache(5, time.Minute, logger.Nop(), cache.WithClock(clock.Now))

		_, err := c.GetOrCreate("https://a:9200", func() (clientpool.RootClient, error) { return dialer.Dial("https://a:9200") })
		require.NoError(t, err)
		clock.Advance(time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			c.Run(ctx, 5*time.Millisecond)
			close(done)
		}()

		assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
		cancel()
		<-done
	})
}

func TestEndpointCache_DisposalFailure(t *testing.T) {
	var out syncBuffer
	dialer := newFakeDialer(t)
	dialer.closeErr = errors.New("connection reset")
	c := clientpool.NewEndpointCache(1, time.Hour, newTestLogger(&out))

	for _, endpoint := range []string{"https://a:9200", "https://b:9200"} {
		_, err := c.GetOrCreate(endpoint, func() (clientpool.RootClient, error) { return dialer.Dial(endpoint) })
		require.NoError(t, err, "disposal failures never reach callers")
	}
	c.Wait()

	logged := out.String()
	assert.Contains(t, logged, `"level":"WARN"`)
	assert.Contains(t, logged, clientpool.ErrDisposalFailed.Error())
	assert.Contains(t, logged, "connection reset")
	assert.Contains(t, logged, "https://a:9200")
	assert.Equal(t, 1, c.Len())
}

func TestEndpointCache_Close(t *testing.T) {
	dialer := newFakeDialer(t)
	c := clientpool.NewEndpointCache(5, time.Hour, logger.Nop())

	for _, endpoint := range []string{"https://a:9200", "https://b:9200", "https://c:9200"} {
		_, err := c.GetOrCreate(endpoint, func() (clientpool.RootClient, error) { return dialer.Dial(endpoint) })
		require.NoError(t, err)
	}
	c.Close()

	assert.Equal(t, 0, c.Len())
	for _, root := range dialer.Roots() {
		assert.EqualValues(t, 1, root.closes.Load())
		assert.True(t, root.Closed())
	}
}

func TestEndpointCache_CloseWaitsForRunningFactory(t *testing.T) {
	dialer := newFakeDialer(t)
	dialer.delay = 100 * time.Millisecond
	started := make(chan struct{})
	dialer.onDial = func(string) { close(started) }
	c := clientpool.NewEndpointCache(5, time.Hour, logger.Nop())

	created := make(chan error, 1)
	go func() {
		_, err := c.GetOrCreate("https://a:9200", func() (clientpool.RootClient, error) { return dialer.Dial("https://a:9200") })
		created <- err
	}()

	<-started
	c.Close()

	require.NoError(t, <-created)
	assert.Equal(t, 0, c.Len())
	roots := dialer.Roots()
	require.Len(t, roots, 1)
	assert.EqualValues(t, 1, roots[0].closes.Load(), "a root created while closing is still disposed")

	_, err := c.GetOrCreate("https://a:9200", func() (clientpool.RootClient, error) { return dialer.Dial("https://a:9200") })
	assert.ErrorIs(t, err, clientpool.ErrPoolClosed)
	assert.Equal(t, 0, c.Sweep())
	c.Close()
}

func TestEndpointCache_NilRoot(t *testing.T) {
	c := clientpool.NewEndpointCache(5, time.Hour, logger.Nop())
	nilDialer := func() (clientpool.RootClient, error) { return nil, nil }

	for range 2 {
		root, err := c.GetOrCreate("https://a:9200", nilDialer)
		require.ErrorIs(t, err, clientpool.ErrNilRoot)
		assert.Nil(t, root)
	}
	assert.Equal(t, 0, c.Len(), "a nil root is never cached")
}
