package utils

import (
	"context"

	"gear-system/pkg/contextkeys"
	apperrors "gear-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return role, nil
}

func IsAdmin(ctx context.Context) bool {
	role, err := GetUserRoleFromCtx(ctx)
	return err == nil && role == "admin"
}
