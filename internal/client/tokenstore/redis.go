package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/shared/dto"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps credentials in Redis under "<prefix>_access_token" and
// "<prefix>_refresh_token", so several client processes share one session
type RedisStore struct {
	client     redis.UniversalClient
	accessKey  string
	refreshKey string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		client:     client,
		accessKey:  prefix + "_access_token",
		refreshKey: prefix + "_refresh_token",
	}
}

func (s *RedisStore) Load(ctx context.Context) (dto.AuthTokens, error) {
	values, err := s.client.MGet(ctx, s.accessKey, s.refreshKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return dto.AuthTokens{}, fmt.Errorf("redis load tokens: %w", err)
	}

	var tokens dto.AuthTokens
	if len(values) == 2 {
		tokens.AccessToken, _ = values[0].(string)
		tokens.RefreshToken, _ = values[1].(string)
	}
	return tokens, nil
}

func (s *RedisStore) Save(ctx context.Context, tokens dto.AuthTokens) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.accessKey, tokens.AccessToken, 0)
		pipe.Set(ctx, s.refreshKey, tokens.RefreshToken, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save tokens: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.accessKey, s.refreshKey).Err(); err != nil {
		return fmt.Errorf("redis clear tokens: %w", err)
	}
	return nil
}
