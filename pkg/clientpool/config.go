package clientpool

import (
	"time"

	"github.com/dmitrymomot/datasource/pkg/opensearch"
)

// Config holds pool settings. It is read once when the pool is built.
// The pool exists to reuse TCP connections per endpoint, so the size is
// kept small; the TTL matches the usual idle connection timeout.
type Config struct {
	Size          int               `env:"DATA_SOURCE_CLIENT_POOL_SIZE" envDefault:"5"`
	TTL           time.Duration     `env:"DATA_SOURCE_CLIENT_TTL" envDefault:"15m"`
	SweepInterval time.Duration     `env:"DATA_SOURCE_CLIENT_SWEEP_INTERVAL" envDefault:"1m"` // Zero disables the background sweep; expiry still happens on lookup.
	Client        opensearch.Config // Root client transport settings.
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Size:          5,
		TTL:           15 * time.Minute,
		SweepInterval: time.Minute,
		Client:        opensearch.DefaultConfig(),
	}
}

// Validate checks the pool bounds.
func (c *Config) Validate() error {
	if c.Size < 1 {
		return ErrInvalidPoolSize
	}
	if c.TTL <= 0 {
		return ErrInvalidTTL
	}
	return nil
}
