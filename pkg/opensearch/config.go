package opensearch

import "time"

// Config holds the root client transport settings shared by every endpoint
// in the pool. Endpoint addresses and credentials are not part of it: they
// come from data source and credential records at request time.
// Certificate verification is always enforced and cannot be configured off.
type Config struct {
	MaxRetries          int           `env:"DATA_SOURCE_MAX_RETRIES" envDefault:"3"`
	DisableRetry        bool          `env:"DATA_SOURCE_DISABLE_RETRY" envDefault:"false"`
	DialTimeout         time.Duration `env:"DATA_SOURCE_DIAL_TIMEOUT" envDefault:"10s"`
	IdleConnTimeout     time.Duration `env:"DATA_SOURCE_IDLE_CONN_TIMEOUT" envDefault:"15m"`
	MaxIdleConnsPerHost int           `env:"DATA_SOURCE_MAX_IDLE_CONNS_PER_HOST" envDefault:"10"`
	CACertFile          string        `env:"DATA_SOURCE_CA_CERT_FILE"` // Optional PEM bundle trusted in addition to the system roots.
}

// DefaultConfig mirrors the envDefault tags for callers that do not load
// configuration from the environment.
func DefaultConfig() Config {
	return Config{
		MaxRetries:          3,
		DialTimeout:         10 * time.Second,
		IdleConnTimeout:     15 * time.Minute,
		MaxIdleConnsPerHost: 10,
	}
}
