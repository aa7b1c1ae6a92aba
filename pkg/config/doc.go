// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for optional .env files and
// github.com/caarlos0/env/v11 for struct-tag based parsing. Configuration is
// read once at startup and passed to constructors; nothing is cached or
// re-read behind the caller's back.
//
// A struct whose pointer implements Validator is validated right after
// parsing, so range checks live next to the fields they protect:
//
//	type PoolConfig struct {
//		Size int `env:"POOL_SIZE" envDefault:"5"`
//	}
//
//	func (c *PoolConfig) Validate() error {
//		if c.Size < 1 {
//			return errors.New("pool size must be at least 1")
//		}
//		return nil
//	}
//
//	if err := config.LoadEnv(); err != nil { ... }
//	cfg, err := config.Load[PoolConfig]()
//
// LoadFrom parses an explicit map and is convenient in tests.
//
// Errors: ErrParsingConfig, ErrInvalidConfig and ErrLoadingEnvFile, all
// joined with the underlying cause.
package config
