package verification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const namespace = "ussd:verify:"

// RedisStore keeps each code as a hash that expires with the code.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

var _ Store = (*RedisStore)(nil)

func (r *RedisStore) Put(ctx context.Context, code Code, ttl time.Duration) error {
	key := namespace + code.Phone
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"code", code.Code,
			"issued_at", code.IssuedAt.UnixNano(),
			"attempts", code.Attempts,
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, phone string) (*Code, error) {
	fields, err := r.client.HGetAll(ctx, namespace+phone).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrCodeNotFound
	}

	issued, err := strconv.ParseInt(fields["issued_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse issued_at: %w", err)
	}
	attempts, _ := strconv.Atoi(fields["attempts"])

	return &Code{
		Phone:    phone,
		Code:     fields["code"],
		IssuedAt: time.Unix(0, issued).UTC(),
		Attempts: attempts,
	}, nil
}

func (r *RedisStore) Delete(ctx context.Context, phone string) error {
	if err := r.client.Del(ctx, namespace+phone).Err(); err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}
	return nil
}

func (r *RedisStore) IncrementAttempts(ctx context.Context, phone string) (int, error) {
	key := namespace + phone
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to check verification code: %w", err)
	}
	if exists == 0 {
		return 0, ErrCodeNotFound
	}
	n, err := r.client.HIncrBy(ctx, key, "attempts", 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment attempts: %w", err)
	}
	return int(n), nil
}
