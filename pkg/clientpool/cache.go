package clientpool

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/datasource/pkg/cache"
	"github.com/dmitrymomot/datasource/pkg/logger"
	"github.com/dmitrymomot/datasource/pkg/opensearch"
)

// RootClient is a connection handle bound to one endpoint.
// *opensearch.Root implements it.
type RootClient interface {
	Child(opts ...opensearch.ChildOption) *opensearch.Child
	Close() error
}

// EndpointCache keeps at most capacity root clients keyed by endpoint.
// Entries leave the cache by LRU pressure or by age, measured from
// insertion. Every evicted handle is closed exactly once in its own
// goroutine.
type EndpointCache struct {
	entries   *cache.LRUCache[string, RootClient]
	inflight  singleflight.Group
	disposals sync.WaitGroup
	log       *slog.Logger

	// mu is held for reading by every operation that can insert or evict,
	// and for writing by Close, so no disposal starts while Close waits.
	mu     sync.RWMutex
	closed bool
}

// NewEndpointCache panics if capacity is not positive.
func NewEndpointCache(capacity int, ttl time.Duration, log *slog.Logger, opts ...cache.Option) *EndpointCache {
	if log == nil {
		log = logger.Nop()
	}
	c := &EndpointCache{
		entries: cache.NewLRUCache[string, RootClient](capacity, append([]cache.Option{cache.WithTTL(ttl)}, opts...)...),
		log:     log,
	}
	c.entries.SetEvictCallback(c.dispose)
	return c
}

// GetOrCreate returns the cached root for endpoint or builds one with
// factory. Concurrent misses for the same endpoint share a single factory
// call. A failed factory leaves the cache untouched. After Close it fails
// with ErrPoolClosed; Close waits for factories already running.
func (c *EndpointCache) GetOrCreate(endpoint string, factory func() (RootClient, error)) (RootClient, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrPoolClosed
	}

	if root, ok := c.entries.Get(endpoint); ok {
		c.log.Debug("client pool hit", logger.Endpoint(endpoint))
		return root, nil
	}

	v, err, _ := c.inflight.Do(endpoint, func() (any, error) {
		// Another flight may have inserted it between the lookup and Do.
		if root, ok := c.entries.Get(endpoint); ok {
			return root, nil
		}

		c.log.Debug("client pool miss", logger.Endpoint(endpoint))
		root, err := factory()
		if err != nil {
			return nil, err
		}
		if root == nil {
			return nil, ErrNilRoot
		}
		if old, existed := c.entries.Put(endpoint, root); existed && old != root {
			c.dispose(endpoint, old)
		}
		return root, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(RootClient), nil
}

// Sweep evicts expired entries and returns how many were removed.
func (c *EndpointCache) Sweep() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return 0
	}
	return c.entries.Sweep()
}

// Run sweeps expired entries every interval until ctx is done.
func (c *EndpointCache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.log.Debug("client pool swept expired clients", slog.Int("count", n))
			}
		}
	}
}

// Len returns the number of cached roots, expired ones included until swept.
func (c *EndpointCache) Len() int {
	return c.entries.Len()
}

// Endpoints lists cached endpoints from most to least recently used.
func (c *EndpointCache) Endpoints() []string {
	return c.entries.Keys()
}

// Wait blocks until every disposal started so far has finished.
func (c *EndpointCache) Wait() {
	c.disposals.Wait()
}

// Close waits for running GetOrCreate calls, evicts every entry and waits
// for the disposals to finish. Calling it again has no effect.
func (c *EndpointCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.entries.Clear()
	c.disposals.Wait()
}

// dispose runs under the LRU lock, so it only schedules the close.
func (c *EndpointCache) dispose(endpoint string, root RootClient) {
	c.disposals.Add(1)
	go func() {
		defer c.disposals.Done()
		if err := root.Close(); err != nil {
			c.log.Warn("failed to dispose data source client",
				logger.Endpoint(endpoint),
				logger.Error(errors.Join(ErrDisposalFailed, err)),
			)
			return
		}
		c.log.Debug("disposed data source client", logger.Endpoint(endpoint))
	}()
}
