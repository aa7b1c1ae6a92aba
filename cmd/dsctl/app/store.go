package app

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/datasource/pkg/config"
	"github.com/dmitrymomot/datasource/pkg/datasource"
	"github.com/dmitrymomot/datasource/pkg/mongo"
	"github.com/dmitrymomot/datasource/pkg/pg"
	"github.com/dmitrymomot/datasource/pkg/redis"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
	"github.com/dmitrymomot/datasource/pkg/secrets"
)

const (
	storeMemory   = "memory"
	storePostgres = "postgres"
	storeMongo    = "mongo"
	storeRedis    = "redis"
)

// openStore connects to the selected backend. When both secrets keys are
// configured, credential passwords are sealed on write and opened on read.
func (c *cli) openStore(ctx context.Context) (savedobjects.Store, func(), error) {
	store, closeFn, err := c.openBackend(ctx)
	if err != nil {
		return nil, nil, err
	}

	keys, err := config.Load[secrets.Config]()
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	if !keys.Enabled() {
		return store, closeFn, nil
	}
	cipher, err := keys.Cipher()
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	c.log.Debug("credential encryption enabled")
	return datasource.NewEncryptingStore(store, cipher), closeFn, nil
}

func (c *cli) openBackend(ctx context.Context) (savedobjects.Store, func(), error) {
	switch c.store {
	case storeMemory:
		return savedobjects.NewMemoryStore(), func() {}, nil

	case storePostgres:
		cfg, err := config.Load[pg.Config]()
		if err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return savedobjects.NewPostgresStore(pool), pool.Close, nil

	case storeMongo:
		cfg, err := config.Load[mongo.Config]()
		if err != nil {
			return nil, nil, err
		}
		coll, err := mongo.Collection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := coll.Database().Client().Disconnect(context.Background()); err != nil {
				c.log.Warn("failed to disconnect from mongo", "error", err)
			}
		}
		return savedobjects.NewMongoStore(coll), closeFn, nil

	case storeRedis:
		cfg, err := config.Load[redis.Config]()
		if err != nil {
			return nil, nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Close() }
		return savedobjects.NewRedisStore(client, cfg.KeyPrefix), closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown store %q: must be %s, %s, %s or %s",
		c.store, storeMemory, storePostgres, storeMongo, storeRedis)
}
