package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/eventbus"
)

// SessionListener reacts to privilege changes by revoking every session of
// the affected user and dropping their cached permission set. The change
// takes effect immediately: the next request with an old token fails the
// session check and must re-authenticate.
type SessionListener struct {
	sessionRepo repositories.SessionRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	logger      *zap.Logger
}

func NewSessionListener(
	sessionRepo repositories.SessionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *SessionListener {
	return &SessionListener{
		sessionRepo: sessionRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

func (l *SessionListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.UserPrivilegeChangedName, l.onPrivilegeChanged)
}

func (l *SessionListener) onPrivilegeChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.UserPrivilegeChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if err := l.sessionRepo.RevokeAll(ctx, e.UserID); err != nil {
		return fmt.Errorf("revoke sessions for user %d: %w", e.UserID, err)
	}
	if err := l.cacheRepo.Del(ctx, fmt.Sprintf("auth:permissions:user:%d", e.UserID)); err != nil {
		return fmt.Errorf("drop permission cache for user %d: %w", e.UserID, err)
	}

	l.logger.Info("sessions revoked after privilege change", zap.Uint64("user_id", e.UserID))
	return nil
}
