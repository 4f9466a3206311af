package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

const (
	EventAccountCreated = "user.created"
	EventAccountUpdated = "user.updated"
	EventAccountDeleted = "user.deleted"
)

// WebhookEvent is an identity provider lifecycle event after signature
// verification.
type WebhookEvent struct {
	Type string         `json:"type"`
	Data WebhookAccount `json:"data"`
}

// WebhookAccount is the provider's user payload.
type WebhookAccount struct {
	ID        string `json:"id"`
	Email     string `json:"email_address"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UpdateAccountRequest struct {
	Name     *string
	Currency *string
}

type Service interface {
	// ResolveBearer verifies a bearer token and returns the local account.
	ResolveBearer(ctx context.Context, token string) (Account, error)
	// HandleWebhookEvent applies a verified provider lifecycle event.
	HandleWebhookEvent(ctx context.Context, event WebhookEvent) error
	GetAccount(ctx context.Context, tenantID snowflake.ID) (Account, error)
	UpdateAccount(ctx context.Context, tenantID snowflake.ID, req UpdateAccountRequest) (Account, error)
}

var (
	ErrInvalidToken    = errors.New("invalid_token")
	ErrAccountNotFound = errors.New("account_not_found")
	ErrInvalidEvent    = errors.New("invalid_event")
	ErrInvalidCurrency = errors.New("invalid_currency")
)
