package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "cart:"

// RedisStore keeps carts in Redis as JSON values with a TTL, so abandoned
// sessions expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+sessionID, data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}
