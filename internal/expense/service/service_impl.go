package service

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/expense/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"github.com/oklog/ulid/v2"
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
		log:   p.Log.Named("expense.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, req domain.CreateExpenseRequest) (domain.Expense, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Expense{}, domain.ErrInvalidDescription
	}
	if req.Amount <= 0 {
		return domain.Expense{}, domain.ErrInvalidAmount
	}
	if !domain.ValidCategory(req.Category) {
		return domain.Expense{}, domain.ErrInvalidCategory
	}

	if req.ClientID != nil {
		ok, err := s.repo.ClientExists(ctx, s.db, tenantID, *req.ClientID)
		if err != nil {
			return domain.Expense{}, err
		}
		if !ok {
			return domain.Expense{}, domain.ErrInvalidClient
		}
	}
	if req.ProjectID != nil {
		ok, err := s.repo.ProjectExists(ctx, s.db, tenantID, *req.ProjectID)
		if err != nil {
			return domain.Expense{}, err
		}
		if !ok {
			return domain.Expense{}, domain.ErrInvalidProject
		}
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	expense := domain.Expense{
		ID:          s.genID.Generate(),
		TenantID:    tenantID,
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		Description: description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.HasReceipt {
		expense.ReceiptRef = newReceiptRef(now)
	}

	if err := s.repo.Insert(ctx, s.db, &expense); err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, req domain.ListExpenseRequest) (pagination.Page[domain.Expense], error) {
	if req.Category != "" && !domain.ValidCategory(req.Category) {
		return pagination.Page[domain.Expense]{}, domain.ErrInvalidCategory
	}

	filter := domain.ListExpenseFilter{
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Category:  req.Category,
		From:      req.From,
		To:        req.To,
	}

	expenses, total, err := s.repo.List(ctx, s.db, tenantID, filter, req.Params)
	if err != nil {
		return pagination.Page[domain.Expense]{}, err
	}
	return pagination.NewPage(expenses, req.Params, total), nil
}

func (s *Service) GetByID(ctx context.Context, tenantID snowflake.ID, id string) (domain.Expense, error) {
	expenseID, err := parseID(id)
	if err != nil {
		return domain.Expense{}, err
	}

	expense, err := s.repo.FindByID(ctx, s.db, tenantID, expenseID)
	if err != nil {
		return domain.Expense{}, err
	}
	if expense == nil {
		return domain.Expense{}, domain.ErrNotFound
	}
	return *expense, nil
}

func (s *Service) Update(ctx context.Context, tenantID snowflake.ID, id string, req domain.UpdateExpenseRequest) (domain.Expense, error) {
	expenseID, err := parseID(id)
	if err != nil {
		return domain.Expense{}, err
	}

	expense, err := s.repo.FindByID(ctx, s.db, tenantID, expenseID)
	if err != nil {
		return domain.Expense{}, err
	}
	if expense == nil {
		return domain.Expense{}, domain.ErrNotFound
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.Expense{}, domain.ErrInvalidDescription
		}
		expense.Description = description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return domain.Expense{}, domain.ErrInvalidAmount
		}
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		if !domain.ValidCategory(*req.Category) {
			return domain.Expense{}, domain.ErrInvalidCategory
		}
		expense.Category = *req.Category
	}
	if req.Date != nil {
		expense.Date = req.Date.UTC()
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, expense); err != nil {
		return domain.Expense{}, err
	}
	return *expense, nil
}

func (s *Service) Delete(ctx context.Context, tenantID snowflake.ID, id string) error {
	expenseID, err := parseID(id)
	if err != nil {
		return err
	}

	expense, err := s.repo.FindByID(ctx, s.db, tenantID, expenseID)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, tenantID, expenseID)
}

// newReceiptRef mints a sortable reference for an attached receipt.
func newReceiptRef(now time.Time) string {
	return "rcpt_" + ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
