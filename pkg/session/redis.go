package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionNamespace = "ussd:session:"
	lockNamespace    = "ussd:lock:"

	lockTTL   = 10 * time.Second
	lockRetry = 25 * time.Millisecond
)

// unlockScript deletes the lock only if it still holds our token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps sessions as JSON values whose TTL is the inactivity window.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, sessionNamespace+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) GetOrCreate(ctx context.Context, id, phone string) (*Session, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s != nil {
		if s.PhoneNumber != phone {
			return nil, ErrPhoneMismatch
		}
		return s, nil
	}
	return New(id, phone, time.Now().UTC()), nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionNamespace+s.ID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionNamespace+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n := 0
	iter := r.client.Scan(ctx, 0, sessionNamespace+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return n, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, sessionNamespace+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}

func (r *RedisStore) Lock(ctx context.Context, id string) (func(), error) {
	key := lockNamespace + id
	token := uuid.NewString()

	ticker := time.NewTicker(lockRetry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire session lock: %w", err)
		}
		if ok {
			return func() {
				// Released with a fresh context so a cancelled request still unlocks.
				_ = unlockScript.Run(context.Background(), r.client, []string{key}, token).Err()
			}, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
