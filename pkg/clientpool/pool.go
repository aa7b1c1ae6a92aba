package clientpool

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/datasource/pkg/cache"
	"github.com/dmitrymomot/datasource/pkg/logger"
	"github.com/dmitrymomot/datasource/pkg/opensearch"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

// Dialer builds a root client for endpoint.
type Dialer func(endpoint string) (RootClient, error)

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the pool logger. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

// WithDialer replaces opensearch.NewRoot as the root constructor.
func WithDialer(dial Dialer) Option {
	return func(p *Pool) {
		if dial != nil {
			p.dial = dial
		}
	}
}

// WithCacheOptions passes options to the underlying LRU cache.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(p *Pool) {
		p.cacheOpts = append(p.cacheOpts, opts...)
	}
}

// WithMiddleware appends middlewares after the built-in recovery and
// logging ones.
func WithMiddleware(mws ...Middleware) Option {
	return func(p *Pool) {
		p.middlewares = append(p.middlewares, mws...)
	}
}

// Pool hands out authenticated clients for data source ids.
// Root clients are shared per endpoint; every call gets a new child.
type Pool struct {
	cfg         Config
	log         *slog.Logger
	dial        Dialer
	cacheOpts   []cache.Option
	middlewares []Middleware

	cache    *EndpointCache
	resolver *Resolver
	handler  GetClientFunc

	closed  atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	janitor sync.WaitGroup
}

// New validates cfg and builds a pool. It does not connect anywhere.
func New(cfg Config, opts ...Option) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		cfg: cfg,
		log: logger.Nop(),
	}
	p.dial = func(endpoint string) (RootClient, error) {
		return opensearch.NewRoot(endpoint, p.cfg.Client)
	}
	for _, opt := range opts {
		opt(p)
	}

	p.log = p.log.With(logger.Component("clientpool"))
	p.cache = NewEndpointCache(cfg.Size, cfg.TTL, p.log, p.cacheOpts...)
	p.resolver = NewResolver(p.log)
	p.handler = Chain(p.getClient, append([]Middleware{WithRecovery(p.log), WithLogging(p.log)}, p.middlewares...)...)

	p.log.Info("data source client pool created",
		slog.Int("size", cfg.Size),
		slog.Duration("ttl", cfg.TTL),
	)
	return p, nil
}

// GetClient resolves dataSourceID through store and returns a child client
// authenticated with the referenced credential. Every error matches
// ErrInvalidRequest and is a *RequestError.
func (p *Pool) GetClient(ctx context.Context, dataSourceID string, store savedobjects.Getter) (*opensearch.Child, error) {
	child, err := p.handler(ctx, dataSourceID, store)
	if err != nil {
		return nil, asRequestError(dataSourceID, err)
	}
	return child, nil
}

// Handler returns GetClient as a function value for callers that add
// their own middleware.
func (p *Pool) Handler() GetClientFunc {
	return p.GetClient
}

// Start runs the expiry sweep in the background until ctx is done or
// the pool is closed. Calling it twice has no effect.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil || p.closed.Load() {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.janitor.Add(1)
	go func() {
		defer p.janitor.Done()
		p.cache.Run(ctx, p.cfg.SweepInterval)
	}()
}

// Len returns the number of cached root clients.
func (p *Pool) Len() int {
	return p.cache.Len()
}

// Close stops the sweep, disposes every cached root and waits for the
// disposals. Later requests fail with ErrPoolClosed as the cause.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	p.janitor.Wait()

	p.cache.Close()
	p.log.Info("data source client pool closed")
	return nil
}

func (p *Pool) getClient(ctx context.Context, dataSourceID string, store savedobjects.Getter) (*opensearch.Child, error) {
	if p.closed.Load() {
		return nil, newRequestError(dataSourceID, ErrPoolClosed)
	}

	ds, cred, err := p.resolver.Resolve(ctx, dataSourceID, store)
	if err != nil {
		return nil, newRequestError(dataSourceID, err)
	}

	root, err := p.cache.GetOrCreate(ds.Endpoint, func() (RootClient, error) {
		return p.dial(ds.Endpoint)
	})
	if err != nil {
		return nil, newRequestError(dataSourceID, err)
	}

	child, err := Derive(root, cred)
	if err != nil {
		return nil, newRequestError(dataSourceID, err)
	}
	return child, nil
}
