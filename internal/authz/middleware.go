package authz

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/pkg/contextkeys"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

// ActorLoader assembles the actor for an authenticated user id. Implemented
// by the gatekeeper service; declared here so the middleware does not import
// the services package.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID uint64) (*Actor, error)
}

// ActorMiddleware resolves the authenticated user into an Actor and stores
// it in the request context. Must run after the auth middleware.
func ActorMiddleware(loader ActorLoader, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := utils.GetUserIDFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, logger)
			}

			actor, err := loader.LoadActor(c.Request().Context(), userID)
			if err != nil {
				return utils.ErrorResponse(c, err, logger)
			}

			ctx := context.WithValue(c.Request().Context(), contextkeys.ActorKey, actor)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// ActorFromCtx retrieves the actor placed by ActorMiddleware.
func ActorFromCtx(ctx context.Context) (*Actor, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(*Actor)
	if !ok || actor == nil {
		return nil, apperrors.ErrActorNotFoundInContext
	}
	return actor, nil
}

// RequirePermission gates a route on one effective permission.
func RequirePermission(permission string, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := ActorFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, logger)
			}
			if !actor.Can(permission) {
				return utils.ErrorResponse(c, apperrors.ErrForbidden, logger)
			}
			return next(c)
		}
	}
}
