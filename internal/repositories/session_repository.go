package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository tracks live session ids in Redis. A session id that is
// not present has been revoked or has expired.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func sessionKey(jti string) string {
	return "session:" + jti
}

func (r *SessionRepository) Store(ctx context.Context, jti string, userID string, ttl time.Duration) error {
	return r.rdb.Set(ctx, sessionKey(jti), userID, ttl).Err()
}

// Lookup returns the user id registered for jti and whether it exists.
func (r *SessionRepository) Lookup(ctx context.Context, jti string) (string, bool, error) {
	userID, err := r.rdb.Get(ctx, sessionKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, jti string) error {
	return r.rdb.Del(ctx, sessionKey(jti)).Err()
}
