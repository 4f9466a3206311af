// Package webhook verifies signed identity provider deliveries. The scheme
// is HMAC-SHA256 over "<id>.<timestamp>.<payload>" with base64 signatures,
// matching the provider's signed-payload convention.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Deliveries older or newer than the tolerance are rejected to limit
	// replay windows.
	timestampTolerance = 5 * time.Minute

	secretPrefix     = "whsec_"
	signatureVersion = "v1"
)

var (
	ErrInvalidSignature = errors.New("invalid_webhook_signature")
	ErrMissingHeaders   = errors.New("missing_webhook_headers")
	ErrStaleTimestamp   = errors.New("stale_webhook_timestamp")
)

// Verifier checks delivery signatures against a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a verifier from the configured secret. Secrets may be
// raw or carry the provider's "whsec_" base64 prefix.
func NewVerifier(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("webhook secret is required")
	}
	if rest, ok := strings.CutPrefix(secret, secretPrefix); ok {
		decoded, err := base64.StdEncoding.DecodeString(rest)
		if err != nil {
			return nil, fmt.Errorf("decode webhook secret: %w", err)
		}
		return &Verifier{secret: decoded}, nil
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify validates a delivery against its signature header. The signature
// header may carry several space-separated "v1,<base64>" candidates; any
// match accepts the delivery.
func (v *Verifier) Verify(id, timestamp, signatureHeader string, payload []byte, now time.Time) error {
	id = strings.TrimSpace(id)
	timestamp = strings.TrimSpace(timestamp)
	signatureHeader = strings.TrimSpace(signatureHeader)
	if id == "" || timestamp == "" || signatureHeader == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}
	sent := time.Unix(ts, 0)
	if now.Sub(sent) > timestampTolerance || sent.Sub(now) > timestampTolerance {
		return ErrStaleTimestamp
	}

	expected := v.sign(id, timestamp, payload)
	for _, candidate := range strings.Fields(signatureHeader) {
		version, sig, found := strings.Cut(candidate, ",")
		if !found || version != signatureVersion {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return ErrInvalidSignature
}

func (v *Verifier) sign(id, timestamp string, payload []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
