package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/observability/metrics"
	"github.com/ledgique/ledgique/internal/payment/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("payment.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, req domain.CreatePaymentRequest) (domain.Payment, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Payment{}, domain.ErrInvalidClient
	}
	exists, err := s.repo.ClientExists(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Payment{}, err
	}
	if !exists {
		return domain.Payment{}, domain.ErrInvalidClient
	}

	if req.ProjectID != nil {
		ok, err := s.repo.ProjectExists(ctx, s.db, tenantID, *req.ProjectID)
		if err != nil {
			return domain.Payment{}, err
		}
		if !ok {
			return domain.Payment{}, domain.ErrInvalidProject
		}
	}

	if req.Amount <= 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	if !domain.ValidMethod(req.Method) {
		return domain.Payment{}, domain.ErrInvalidMethod
	}

	status := req.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}
	if !domain.ValidStatus(status) {
		return domain.Payment{}, domain.ErrInvalidStatus
	}

	paymentType := req.Type
	if paymentType == "" {
		paymentType = domain.PaymentTypeFull
	}
	if !domain.ValidType(paymentType) {
		return domain.Payment{}, domain.ErrInvalidType
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	payment := domain.Payment{
		ID:          s.genID.Generate(),
		TenantID:    tenantID,
		ClientID:    clientID,
		ProjectID:   req.ProjectID,
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		Method:      req.Method,
		Status:      status,
		Type:        paymentType,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return domain.Payment{}, err
	}

	s.metrics.RecordPayment(ctx, string(payment.Method))
	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.Float64("amount", payment.Amount),
		zap.String("method", string(payment.Method)),
	)
	return payment, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, req domain.ListPaymentRequest) (pagination.Page[domain.Payment], error) {
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return pagination.Page[domain.Payment]{}, domain.ErrInvalidStatus
	}
	if req.Method != "" && !domain.ValidMethod(req.Method) {
		return pagination.Page[domain.Payment]{}, domain.ErrInvalidMethod
	}

	filter := domain.ListPaymentFilter{
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Status:    req.Status,
		Method:    req.Method,
		From:      req.From,
		To:        req.To,
	}

	payments, total, err := s.repo.List(ctx, s.db, tenantID, filter, req.Params)
	if err != nil {
		return pagination.Page[domain.Payment]{}, err
	}
	return pagination.NewPage(payments, req.Params, total), nil
}

func (s *Service) GetByID(ctx context.Context, tenantID snowflake.ID, id string) (domain.Payment, error) {
	paymentID, err := parseID(id)
	if err != nil {
		return domain.Payment{}, err
	}

	payment, err := s.repo.FindByID(ctx, s.db, tenantID, paymentID)
	if err != nil {
		return domain.Payment{}, err
	}
	if payment == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *payment, nil
}

func (s *Service) Update(ctx context.Context, tenantID snowflake.ID, id string, req domain.UpdatePaymentRequest) (domain.Payment, error) {
	paymentID, err := parseID(id)
	if err != nil {
		return domain.Payment{}, err
	}

	payment, err := s.repo.FindByID(ctx, s.db, tenantID, paymentID)
	if err != nil {
		return domain.Payment{}, err
	}
	if payment == nil {
		return domain.Payment{}, domain.ErrNotFound
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return domain.Payment{}, domain.ErrInvalidAmount
		}
		payment.Amount = *req.Amount
	}
	if req.Method != nil {
		if !domain.ValidMethod(*req.Method) {
			return domain.Payment{}, domain.ErrInvalidMethod
		}
		payment.Method = *req.Method
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return domain.Payment{}, domain.ErrInvalidStatus
		}
		payment.Status = *req.Status
	}
	if req.Type != nil {
		if !domain.ValidType(*req.Type) {
			return domain.Payment{}, domain.ErrInvalidType
		}
		payment.Type = *req.Type
	}
	if req.Date != nil {
		payment.Date = req.Date.UTC()
	}
	if req.Description != nil {
		payment.Description = strings.TrimSpace(*req.Description)
	}
	payment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, payment); err != nil {
		return domain.Payment{}, err
	}
	return *payment, nil
}

func (s *Service) Delete(ctx context.Context, tenantID snowflake.ID, id string) error {
	paymentID, err := parseID(id)
	if err != nil {
		return err
	}

	payment, err := s.repo.FindByID(ctx, s.db, tenantID, paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, tenantID, paymentID)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
