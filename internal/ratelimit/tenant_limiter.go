package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyTenantRequests = "api:tenant:%s"

const (
	tenantRate  = 50.0
	tenantBurst = 100
)

// TenantLimiter throttles API requests per tenant. It is optional:
// without a redis address it stays disabled, and redis failures let
// requests through rather than taking the API down.
type TenantLimiter struct {
	enabled bool
	bucket  *TokenBucket
	log     *zap.Logger
}

func NewTenantLimiter(cfg config.Config, log *zap.Logger) *TenantLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
	})

	return &TenantLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		log:     log.Named("ratelimit"),
	}
}

func (l *TenantLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether the tenant may proceed. Fails open.
func (l *TenantLimiter) Allow(ctx context.Context, tenantID snowflake.ID) bool {
	if !l.Enabled() {
		return true
	}

	allowed, err := l.bucket.Allow(ctx, fmt.Sprintf(keyTenantRequests, tenantID.String()), tenantRate, tenantBurst)
	if err != nil {
		l.log.Warn("rate limit check failed, allowing request", zap.Error(err))
		return true
	}
	return allowed
}
