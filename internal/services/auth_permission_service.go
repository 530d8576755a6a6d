package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/repositories"
)

const (
	permissionCacheKeyFmt = "auth:permissions:user:%d"
	permissionCacheTTL    = 10 * time.Minute
)

type AuthPermissionServiceInterface interface {
	GetEffectivePermissions(ctx context.Context, userID uint64) ([]string, error)
	InvalidateCache(ctx context.Context, userID uint64) error
}

// AuthPermissionService serves the effective permission set with a short
// Redis cache in front of the resolving query. Privilege changes invalidate
// the entry through the session listener, so the TTL only bounds staleness
// for changes applied directly in the database.
type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
	}
}

func (s *AuthPermissionService) GetEffectivePermissions(ctx context.Context, userID uint64) ([]string, error) {
	key := fmt.Sprintf(permissionCacheKeyFmt, userID)

	if cached, err := s.cacheRepo.Get(ctx, key); err == nil && cached != "" {
		var names []string
		if err := json.Unmarshal([]byte(cached), &names); err == nil {
			return names, nil
		}
		s.logger.Warn("corrupt permission cache entry, refetching", zap.Uint64("user_id", userID))
	}

	names, err := s.permissionRepo.GetEffectivePermissionNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(names); err == nil {
		if err := s.cacheRepo.Set(ctx, key, string(encoded), permissionCacheTTL); err != nil {
			s.logger.Warn("could not cache permissions", zap.Uint64("user_id", userID), zap.Error(err))
		}
	}
	return names, nil
}

func (s *AuthPermissionService) InvalidateCache(ctx context.Context, userID uint64) error {
	return s.cacheRepo.Del(ctx, fmt.Sprintf(permissionCacheKeyFmt, userID))
}
