package opensearch

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
)

// Root is a client bound to exactly one cluster endpoint. It owns the HTTP
// transport and therefore the TCP connections to that endpoint. A Root is
// safe for concurrent use; deriving children never mutates it.
type Root struct {
	endpoint  string
	client    *opensearch.Client
	transport *http.Transport
	closed    atomic.Bool
}

// NewRoot creates a root client for endpoint. It does not contact the
// cluster. Certificate verification is always on for https endpoints.
func NewRoot(endpoint string, cfg Config) (*Root, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Join(ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Join(ErrInvalidEndpoint, fmt.Errorf("unsupported endpoint %q", endpoint))
	}

	tlsConfig, err := newTLSConfig(cfg.CACertFile)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		TLSClientConfig:     tlsConfig,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    []string{endpoint},
		Transport:    transport,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
	})
	if err != nil {
		transport.CloseIdleConnections()
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return &Root{
		endpoint:  endpoint,
		client:    client,
		transport: transport,
	}, nil
}

// Endpoint returns the endpoint the root is bound to.
func (r *Root) Endpoint() string {
	return r.endpoint
}

// Client exposes the unauthenticated underlying client.
func (r *Root) Client() *opensearch.Client {
	return r.client
}

// Close releases idle connections held by the transport. Children derived
// earlier keep working but new connections are no longer pooled by the cache.
func (r *Root) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	r.transport.CloseIdleConnections()
	return nil
}

// Closed reports whether Close has been called.
func (r *Root) Closed() bool {
	return r.closed.Load()
}

func newTLSConfig(caCertFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caCertFile == "" {
		return cfg, nil
	}

	pem, err := os.ReadFile(caCertFile)
	if err != nil {
		return nil, errors.Join(ErrInvalidCACert, err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Join(ErrInvalidCACert, fmt.Errorf("no certificates found in %s", caCertFile))
	}
	cfg.RootCAs = pool
	return cfg, nil
}
