package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/repositories"
	"inventory-system/pkg/contextkeys"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/utils"
)

// AuthMiddleware validates the bearer token and checks the session is still
// active. Revoked sessions fail here even when the token itself has not
// expired, which is what makes privilege changes immediate.
func AuthMiddleware(jwtService service.JWTService, sessionRepo repositories.SessionRepositoryInterface, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, logger)
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, logger)
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				return utils.ErrorResponse(c, err, logger)
			}
			if claims.IsRefreshToken {
				return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, logger)
			}

			active, err := sessionRepo.IsActive(c.Request().Context(), claims.UserID, claims.SessionID)
			if err != nil {
				return utils.ErrorResponse(c, err, logger)
			}
			if !active {
				return utils.ErrorResponse(c, apperrors.ErrSessionRevoked, logger)
			}

			ctx := context.WithValue(c.Request().Context(), contextkeys.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, contextkeys.SessionIDKey, claims.SessionID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
