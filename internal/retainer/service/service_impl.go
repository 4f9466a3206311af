package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/retainer/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("retainer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, req domain.CreateRetainerRequest) (domain.Retainer, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Retainer{}, domain.ErrInvalidClient
	}
	exists, err := s.repo.ClientExists(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Retainer{}, err
	}
	if !exists {
		return domain.Retainer{}, domain.ErrInvalidClient
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Retainer{}, domain.ErrInvalidName
	}
	if req.Amount <= 0 {
		return domain.Retainer{}, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	startDate := now
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}

	retainer := domain.Retainer{
		ID:              s.genID.Generate(),
		TenantID:        tenantID,
		ClientID:        clientID,
		ProjectID:       req.ProjectID,
		Name:            name,
		Amount:          req.Amount,
		RemainingAmount: req.Amount,
		HourlyRate:      req.HourlyRate,
		Status:          domain.RetainerStatusActive,
		StartDate:       startDate,
		EndDate:         req.EndDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &retainer); err != nil {
		return domain.Retainer{}, err
	}
	return retainer, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, req domain.ListRetainerRequest) (pagination.Page[domain.Retainer], error) {
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return pagination.Page[domain.Retainer]{}, domain.ErrInvalidStatus
	}

	filter := domain.ListRetainerFilter{
		ClientID: req.ClientID,
		Status:   req.Status,
	}

	retainers, total, err := s.repo.List(ctx, s.db, tenantID, filter, req.Params)
	if err != nil {
		return pagination.Page[domain.Retainer]{}, err
	}
	return pagination.NewPage(retainers, req.Params, total), nil
}

func (s *Service) GetByID(ctx context.Context, tenantID snowflake.ID, id string) (domain.Retainer, error) {
	retainerID, err := parseID(id)
	if err != nil {
		return domain.Retainer{}, err
	}

	retainer, err := s.repo.FindByID(ctx, s.db, tenantID, retainerID)
	if err != nil {
		return domain.Retainer{}, err
	}
	if retainer == nil {
		return domain.Retainer{}, domain.ErrNotFound
	}
	return *retainer, nil
}

func (s *Service) Update(ctx context.Context, tenantID snowflake.ID, id string, req domain.UpdateRetainerRequest) (domain.Retainer, error) {
	retainerID, err := parseID(id)
	if err != nil {
		return domain.Retainer{}, err
	}

	retainer, err := s.repo.FindByID(ctx, s.db, tenantID, retainerID)
	if err != nil {
		return domain.Retainer{}, err
	}
	if retainer == nil {
		return domain.Retainer{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Retainer{}, domain.ErrInvalidName
		}
		retainer.Name = name
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return domain.Retainer{}, domain.ErrInvalidStatus
		}
		retainer.Status = *req.Status
	}
	if req.EndDate != nil {
		retainer.EndDate = req.EndDate
	}
	retainer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, retainer); err != nil {
		return domain.Retainer{}, err
	}
	return *retainer, nil
}

func (s *Service) Delete(ctx context.Context, tenantID snowflake.ID, id string) error {
	retainerID, err := parseID(id)
	if err != nil {
		return err
	}

	retainer, err := s.repo.FindByID(ctx, s.db, tenantID, retainerID)
	if err != nil {
		return err
	}
	if retainer == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, tenantID, retainerID)
}

// RecordUsage draws down the retainer balance. The decrement and the
// usage row share one transaction, and a draw larger than the
// remaining balance is rejected rather than clamped.
func (s *Service) RecordUsage(ctx context.Context, tenantID snowflake.ID, id string, req domain.RecordUsageRequest) (domain.Retainer, error) {
	retainerID, err := parseID(id)
	if err != nil {
		return domain.Retainer{}, err
	}
	if req.Amount <= 0 {
		return domain.Retainer{}, domain.ErrInvalidAmount
	}

	var updated domain.Retainer
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		retainer, err := s.repo.FindByID(ctx, tx, tenantID, retainerID)
		if err != nil {
			return err
		}
		if retainer == nil {
			return domain.ErrNotFound
		}
		if retainer.Status != domain.RetainerStatusActive {
			return domain.ErrNotActive
		}
		if req.Amount > retainer.RemainingAmount {
			return domain.ErrInsufficientFunds
		}

		now := time.Now().UTC()
		retainer.RemainingAmount -= req.Amount
		if retainer.RemainingAmount == 0 {
			retainer.Status = domain.RetainerStatusExhausted
		}
		retainer.UpdatedAt = now

		usage := domain.RetainerUsage{
			ID:          s.genID.Generate(),
			RetainerID:  retainer.ID,
			Amount:      req.Amount,
			Description: strings.TrimSpace(req.Description),
			UsedAt:      now,
		}

		if err := s.repo.InsertUsage(ctx, tx, &usage); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, tx, retainer); err != nil {
			return err
		}
		updated = *retainer
		return nil
	})
	if err != nil {
		return domain.Retainer{}, err
	}

	s.log.Info("retainer usage recorded",
		zap.String("retainer_id", updated.ID.String()),
		zap.Float64("amount", req.Amount),
		zap.Float64("remaining", updated.RemainingAmount),
	)
	return updated, nil
}

func (s *Service) ListUsage(ctx context.Context, tenantID snowflake.ID, id string) ([]domain.RetainerUsage, error) {
	retainerID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	retainer, err := s.repo.FindByID(ctx, s.db, tenantID, retainerID)
	if err != nil {
		return nil, err
	}
	if retainer == nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.ListUsage(ctx, s.db, retainerID)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
