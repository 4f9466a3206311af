package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ledgique/ledgique/internal/config"
	"github.com/ledgique/ledgique/internal/identity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	jwtSecret []byte
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("identity.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		jwtSecret: []byte(p.Cfg.AuthJWTSecret),
	}
}

func (s *Service) ResolveBearer(ctx context.Context, token string) (domain.Account, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(s.jwtSecret) == 0 {
		return domain.Account{}, domain.ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return domain.Account{}, domain.ErrInvalidToken
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return domain.Account{}, domain.ErrInvalidToken
	}

	account, err := s.repo.FindByExternalID(ctx, s.db, subject)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return *account, nil
}

func (s *Service) HandleWebhookEvent(ctx context.Context, event domain.WebhookEvent) error {
	externalID := strings.TrimSpace(event.Data.ID)
	if externalID == "" {
		return domain.ErrInvalidEvent
	}

	switch event.Type {
	case domain.EventAccountCreated, domain.EventAccountUpdated:
		return s.upsertAccount(ctx, externalID, event.Data)
	case domain.EventAccountDeleted:
		return s.repo.DeleteByExternalID(ctx, s.db, externalID)
	default:
		s.log.Debug("ignoring identity event", zap.String("type", event.Type))
		return nil
	}
}

func (s *Service) GetAccount(ctx context.Context, tenantID snowflake.ID) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return *account, nil
}

func (s *Service) UpdateAccount(ctx context.Context, tenantID snowflake.ID, req domain.UpdateAccountRequest) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			return domain.Account{}, domain.ErrInvalidCurrency
		}
		account.Currency = currency
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, account); err != nil {
		return domain.Account{}, err
	}
	return *account, nil
}

func (s *Service) upsertAccount(ctx context.Context, externalID string, data domain.WebhookAccount) error {
	existing, err := s.repo.FindByExternalID(ctx, s.db, externalID)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(strings.TrimSpace(data.FirstName) + " " + strings.TrimSpace(data.LastName))
	now := time.Now().UTC()

	if existing == nil {
		account := domain.Account{
			ID:         s.genID.Generate(),
			ExternalID: externalID,
			Email:      strings.TrimSpace(data.Email),
			Name:       name,
			Currency:   "USD",
			Metadata:   datatypes.JSONMap{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repo.Insert(ctx, s.db, &account); err != nil {
			return err
		}
		s.log.Info("account provisioned", zap.String("external_id", externalID))
		return nil
	}

	if email := strings.TrimSpace(data.Email); email != "" {
		existing.Email = email
	}
	if name != "" {
		existing.Name = name
	}
	existing.UpdatedAt = now
	return s.repo.Update(ctx, s.db, existing)
}
