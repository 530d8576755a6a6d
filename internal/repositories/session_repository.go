package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionRepositoryInterface tracks issued sessions per user in Redis sets.
// Revoking all of a user's sessions is the teeth behind permission changes:
// the auth middleware rejects any token whose session id is no longer in the
// set.
type SessionRepositoryInterface interface {
	Create(ctx context.Context, userID uint64, sessionID string, ttl time.Duration) error
	IsActive(ctx context.Context, userID uint64, sessionID string) (bool, error)
	Revoke(ctx context.Context, userID uint64, sessionID string) error
	RevokeAll(ctx context.Context, userID uint64) error
}

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepositoryInterface {
	return &SessionRepository{client: client}
}

func sessionsKey(userID uint64) string {
	return fmt.Sprintf("sessions:user:%d", userID)
}

func (r *SessionRepository) Create(ctx context.Context, userID uint64, sessionID string, ttl time.Duration) error {
	key := sessionsKey(userID)
	if err := r.client.SAdd(ctx, key, sessionID).Err(); err != nil {
		return err
	}
	// The set lives as long as the longest-lived token could.
	return r.client.Expire(ctx, key, ttl).Err()
}

func (r *SessionRepository) IsActive(ctx context.Context, userID uint64, sessionID string) (bool, error) {
	return r.client.SIsMember(ctx, sessionsKey(userID), sessionID).Result()
}

func (r *SessionRepository) Revoke(ctx context.Context, userID uint64, sessionID string) error {
	return r.client.SRem(ctx, sessionsKey(userID), sessionID).Err()
}

func (r *SessionRepository) RevokeAll(ctx context.Context, userID uint64) error {
	return r.client.Del(ctx, sessionsKey(userID)).Err()
}
