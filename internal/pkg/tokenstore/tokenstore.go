// Package tokenstore tracks issued session tokens so logout can revoke them
// before they expire.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Registry records live token IDs (jti) per user
type Registry interface {
	Register(ctx context.Context, tokenID, userID string, expiresAt time.Time) error
	IsActive(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

type entry struct {
	UserID    string `json:"uid"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func tokenKey(id string) string    { return fmt.Sprintf("lockersys:token:%s", id) }
func userSetKey(uid string) string { return fmt.Sprintf("lockersys:user_tokens:%s", uid) }

// RedisRegistry keeps one key per token plus a set of token IDs per user
type RedisRegistry struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisRegistry creates a redis-backed registry
func NewRedisRegistry(rdb *redis.Client) *RedisRegistry {
	return &RedisRegistry{rdb: rdb, now: time.Now}
}

func (r *RedisRegistry) Register(ctx context.Context, tokenID, userID string, expiresAt time.Time) error {
	now := r.now()
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return fmt.Errorf("register token %s: already expired", tokenID)
	}
	b, err := json.Marshal(entry{UserID: userID, IssuedAt: now.Unix(), ExpiresAt: expiresAt.Unix()})
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, tokenKey(tokenID), b, ttl)
	pipe.SAdd(ctx, userSetKey(userID), tokenID)
	pipe.Expire(ctx, userSetKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("register token: %w", err)
	}
	return nil
}

func (r *RedisRegistry) IsActive(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, tokenKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return n == 1, nil
}

func (r *RedisRegistry) Revoke(ctx context.Context, tokenID string) error {
	var e entry
	b, err := r.rdb.Get(ctx, tokenKey(tokenID)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		return fmt.Errorf("revoke token: %w", err)
	}
	_ = json.Unmarshal(b, &e)

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, tokenKey(tokenID))
	if e.UserID != "" {
		pipe.SRem(ctx, userSetKey(e.UserID), tokenID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *RedisRegistry) RevokeAllForUser(ctx context.Context, userID string) error {
	ids, err := r.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("list user tokens: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, tokenKey(id))
	}
	pipe.Del(ctx, userSetKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

// MemoryRegistry is the single-process registry used when redis is not configured
type MemoryRegistry struct {
	mu     sync.Mutex
	tokens map[string]entry
	now    func() time.Time
}

// NewMemoryRegistry creates an empty in-process registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{tokens: make(map[string]entry), now: time.Now}
}

func (r *MemoryRegistry) Register(_ context.Context, tokenID, userID string, expiresAt time.Time) error {
	now := r.now()
	if !expiresAt.After(now) {
		return fmt.Errorf("register token %s: already expired", tokenID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[tokenID] = entry{UserID: userID, IssuedAt: now.Unix(), ExpiresAt: expiresAt.Unix()}
	return nil
}

func (r *MemoryRegistry) IsActive(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tokens[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().Unix() >= e.ExpiresAt {
		delete(r.tokens, tokenID)
		return false, nil
	}
	return true, nil
}

func (r *MemoryRegistry) Revoke(_ context.Context, tokenID string) error {
	r.mu.Lock()
	delete(r.tokens, tokenID)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.tokens {
		if e.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}
