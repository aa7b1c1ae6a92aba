// Package redis connects to Redis with go-redis/v9 and retries until the
// server answers a PING.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := savedobjects.NewRedisStore(client, cfg.KeyPrefix)
//
// Healthcheck wraps PING for readiness probes.
package redis
