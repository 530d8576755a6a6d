package services

import (
	"context"

	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
)

// Gatekeeper builds the per-request Actor: the user row, role names, and the
// cached effective permission set.
type Gatekeeper struct {
	userRepo    repositories.UserRepositoryInterface
	permissions AuthPermissionServiceInterface
	logger      *zap.Logger
}

func NewGatekeeper(
	userRepo repositories.UserRepositoryInterface,
	permissions AuthPermissionServiceInterface,
	logger *zap.Logger,
) *Gatekeeper {
	return &Gatekeeper{userRepo: userRepo, permissions: permissions, logger: logger}
}

func (g *Gatekeeper) LoadActor(ctx context.Context, userID uint64) (*authz.Actor, error) {
	user, err := g.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrSessionRevoked
	}

	roles, err := g.userRepo.GetUserRoleNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	permissionNames, err := g.permissions.GetEffectivePermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	permissions := make(map[string]bool, len(permissionNames))
	for _, name := range permissionNames {
		permissions[name] = true
	}

	return &authz.Actor{User: &user, Roles: roles, Permissions: permissions}, nil
}
