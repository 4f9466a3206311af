package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	identitydomain "github.com/ledgique/ledgique/internal/identity/domain"
)

// webhookHeader reads the provider's delivery headers, falling back to
// the generic names some senders use.
func webhookHeader(c *gin.Context, primary, fallback string) string {
	if v := c.GetHeader(primary); v != "" {
		return v
	}
	return c.GetHeader(fallback)
}

// HandleIdentityWebhook ingests account lifecycle events from the
// identity provider. The route is unauthenticated; the HMAC signature
// is the only gate.
func (s *Server) HandleIdentityWebhook(c *gin.Context) {
	if s.webhookVerifier == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	id := webhookHeader(c, "svix-id", "webhook-id")
	timestamp := webhookHeader(c, "svix-timestamp", "webhook-timestamp")
	signature := webhookHeader(c, "svix-signature", "webhook-signature")

	if err := s.webhookVerifier.Verify(id, timestamp, signature, payload, time.Now().UTC()); err != nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var event identitydomain.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.identitySvc.HandleWebhookEvent(c.Request.Context(), event); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordWebhookEvent(c.Request.Context(), event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
