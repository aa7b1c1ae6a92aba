package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by configuration structs that check their own
// invariants after parsing.
type Validator interface {
	Validate() error
}

// LoadEnv loads one or more .env files into the process environment.
// Without arguments it loads ./.env and ignores a missing file.
// Variables already present in the environment are not overridden.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses the process environment into a new T using `env` struct tags
// and runs T's Validate method when it has one.
//
// Example:
//
//	type PoolConfig struct {
//		Size int           `env:"POOL_SIZE" envDefault:"5"`
//		TTL  time.Duration `env:"POOL_TTL" envDefault:"15m"`
//	}
//
//	cfg, err := config.Load[PoolConfig]()
func Load[T any]() (T, error) {
	return load[T](env.Options{})
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom[T any](vars map[string]string) (T, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return load[T](env.Options{Environment: vars})
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func load[T any](opts env.Options) (T, error) {
	var cfg T
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	if v, ok := any(&cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			return cfg, errors.Join(ErrInvalidConfig, err)
		}
	}
	return cfg, nil
}
