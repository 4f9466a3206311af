package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgique/ledgique/internal/tenantctx"
)

const contextTenantIDKey = "tenant_id"

// AuthRequired gates a route group behind the bearer token check. The
// resolved account doubles as the tenant: its ID scopes every query
// downstream.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		account, err := s.identitySvc.ResolveBearer(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextTenantIDKey, account.ID)
		c.Request = c.Request.WithContext(tenantctx.WithTenantID(c.Request.Context(), account.ID))
		c.Next()
	}
}

// RateLimited throttles per tenant. Runs after AuthRequired so the
// tenant is known; a disabled limiter turns this into a no-op.
func (s *Server) RateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.tenantLimiter.Enabled() {
			c.Next()
			return
		}

		if !s.tenantLimiter.Allow(c.Request.Context(), tenantID(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
