package utils

import (
	"context"

	"github.com/ekthaa/khata_backend/appctx"
)

// Re-exported so callers don't import appctx directly.
var (
	ContextKeyToken           = appctx.ContextKeyToken
	ContextKeyBusinessId      = appctx.ContextKeyBusinessId
	ContextKeyUserId          = appctx.ContextKeyUserId
	ContextKeyUserType        = appctx.ContextKeyUserType
	ContextKeySkipTenantScope = appctx.ContextKeySkipTenantScope
)

func GetBusinessIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyBusinessId)
}

func SetBusinessIdInContext(ctx context.Context, businessId string) context.Context {
	return appctx.Set(ctx, appctx.ContextKeyBusinessId, businessId)
}

func GetUserIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyUserId)
}

func SetUserIdInContext(ctx context.Context, userId string) context.Context {
	return appctx.Set(ctx, appctx.ContextKeyUserId, userId)
}

func GetUserTypeFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyUserType)
}

func SetUserTypeInContext(ctx context.Context, userType string) context.Context {
	return appctx.Set(ctx, appctx.ContextKeyUserType, userType)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyToken)
}

func SetTokenInContext(ctx context.Context, token string) context.Context {
	return appctx.Set(ctx, appctx.ContextKeyToken, token)
}

func SetSkipTenantScopeInContext(ctx context.Context, skip bool) context.Context {
	return appctx.Set(ctx, appctx.ContextKeySkipTenantScope, skip)
}
