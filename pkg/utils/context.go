package utils

import (
	"context"

	"inventory-system/pkg/contextkeys"
	apperrors "inventory-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetSessionIDFromCtx(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(contextkeys.SessionIDKey).(string)
	if !ok {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return sessionID, nil
}
