// Package clientpool hands out authenticated OpenSearch clients for data
// source records.
//
// A data source record names a cluster endpoint and references a credential
// record. For every request the pool reads both records, takes the root
// client for the endpoint from a small LRU cache (creating it on a miss) and
// derives a fresh child client that carries the credential's authentication.
// Root clients own the TCP connections and are shared; children are never
// cached.
//
// Basic usage:
//
//	pool, err := clientpool.New(clientpool.DefaultConfig(), clientpool.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	pool.Start(ctx)
//	defer pool.Close()
//
//	client, err := pool.GetClient(ctx, dataSourceID, store)
//	if errors.Is(err, clientpool.ErrInvalidRequest) {
//		// report a bad request
//	}
//
// Entries leave the cache when the pool is full (least recently used first)
// or when they reach the configured TTL, counted from insertion. Evicted
// roots are closed in the background; close failures are logged and never
// returned.
//
// Errors returned by GetClient are always *RequestError. They match
// ErrInvalidRequest; the internal cause is available through Cause for
// logging but is deliberately not unwrapped.
package clientpool
