package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared across replicas.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore builds a session store on a fresh Redis client.
func NewRedisStore(opt *redis.Options) *RedisStore {
	return &RedisStore{Client: redis.NewClient(opt)}
}

func (s *RedisStore) Set(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.Client.Set(ctx, keyPrefix+token, strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (int64, bool, error) {
	v, err := s.Client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.Client.Del(ctx, keyPrefix+token).Err()
}
