package savedobjects

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces record keys.
const DefaultRedisPrefix = "saved_object"

// RedisStore keeps each record as a JSON value at "<prefix>:<type>:<id>".
type RedisStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// NewRedisStore wraps a redis client. An empty prefix falls back to DefaultRedisPrefix.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) Get(ctx context.Context, objectType, id string) (*Object, error) {
	raw, err := s.client.Get(ctx, s.key(objectType, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var obj Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errors.Join(ErrInvalidObject, err)
	}
	return &obj, nil
}

func (s *RedisStore) Put(ctx context.Context, obj *Object) error {
	ensureID(obj)
	if err := validate(obj); err != nil {
		return err
	}

	stored := clone(obj)
	stored.UpdatedAt = s.now().UTC()
	raw, err := json.Marshal(stored)
	if err != nil {
		return errors.Join(ErrInvalidObject, err)
	}

	if err := s.client.Set(ctx, s.key(obj.Type, obj.ID), raw, 0).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) key(objectType, id string) string {
	return s.prefix + ":" + objectType + ":" + id
}
