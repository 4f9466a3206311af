package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/clock"
	"github.com/ledgique/ledgique/internal/invoice/domain"
	"github.com/ledgique/ledgique/internal/observability/metrics"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Invoices issued without an explicit due date fall due after this many days.
const defaultDueDays = 30

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Create issues an invoice. The invoice number is drawn from the per
// tenant counter inside the same transaction as the insert so numbers
// stay gapless even when a concurrent create fails.
func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Invoice{}, domain.ErrInvalidClient
	}
	exists, err := s.repo.ClientExists(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if !exists {
		return domain.Invoice{}, domain.ErrInvalidClient
	}

	if req.ProjectID != nil {
		ok, err := s.repo.ProjectExists(ctx, s.db, tenantID, *req.ProjectID)
		if err != nil {
			return domain.Invoice{}, err
		}
		if !ok {
			return domain.Invoice{}, domain.ErrInvalidProject
		}
	}

	items, err := buildItems(s.genID, req.Items)
	if err != nil {
		return domain.Invoice{}, err
	}
	if req.TaxRate < 0 {
		return domain.Invoice{}, domain.ErrInvalidTaxRate
	}
	if req.Discount < 0 {
		return domain.Invoice{}, domain.ErrInvalidDiscount
	}

	now := s.clock.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	dueDate := issueDate.AddDate(0, 0, defaultDueDays)
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}

	subtotal, taxAmount, total := computeTotals(items, req.TaxRate, req.Discount)

	invoice := domain.Invoice{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		ClientID:  clientID,
		ProjectID: req.ProjectID,
		Status:    domain.InvoiceStatusDraft,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Subtotal:  subtotal,
		TaxRate:   req.TaxRate,
		TaxAmount: taxAmount,
		Discount:  req.Discount,
		Total:     total,
		Notes:     strings.TrimSpace(req.Notes),
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range invoice.Items {
		invoice.Items[i].InvoiceID = invoice.ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.repo.NextInvoiceNumber(ctx, tx, tenantID, issueDate.Year())
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = fmt.Sprintf("INV-%d-%03d", issueDate.Year(), seq)
		return s.repo.Insert(ctx, tx, &invoice)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.RecordInvoiceIssued(ctx)
	s.log.Info("invoice issued",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Float64("total", invoice.Total),
	)
	return invoice, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, req domain.ListInvoiceRequest) (pagination.Page[domain.Invoice], error) {
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return pagination.Page[domain.Invoice]{}, domain.ErrInvalidStatus
	}

	filter := domain.ListInvoiceFilter{
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Status:    req.Status,
	}

	invoices, total, err := s.repo.List(ctx, s.db, tenantID, filter, req.Params)
	if err != nil {
		return pagination.Page[domain.Invoice]{}, err
	}
	return pagination.NewPage(invoices, req.Params, total), nil
}

func (s *Service) GetByID(ctx context.Context, tenantID snowflake.ID, id string) (domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, tenantID, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) Update(ctx context.Context, tenantID snowflake.ID, id string, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, tenantID, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	if invoice.Status == domain.InvoiceStatusPaid {
		return domain.Invoice{}, domain.ErrNotEditable
	}

	markingPaid := false
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return domain.Invoice{}, domain.ErrInvalidStatus
		}
		if *req.Status == domain.InvoiceStatusPaid {
			markingPaid = true
		} else {
			invoice.Status = *req.Status
		}
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate.UTC()
	}
	if req.TaxRate != nil {
		if *req.TaxRate < 0 {
			return domain.Invoice{}, domain.ErrInvalidTaxRate
		}
		invoice.TaxRate = *req.TaxRate
	}
	if req.Discount != nil {
		if *req.Discount < 0 {
			return domain.Invoice{}, domain.ErrInvalidDiscount
		}
		invoice.Discount = *req.Discount
	}
	if req.Notes != nil {
		invoice.Notes = strings.TrimSpace(*req.Notes)
	}

	replaceItems := req.Items != nil
	if replaceItems {
		items, err := buildItems(s.genID, req.Items)
		if err != nil {
			return domain.Invoice{}, err
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		invoice.Items = items
	}

	invoice.Subtotal, invoice.TaxAmount, invoice.Total = computeTotals(invoice.Items, invoice.TaxRate, invoice.Discount)
	invoice.UpdatedAt = s.clock.Now().UTC()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceItems {
			if err := s.repo.ReplaceItems(ctx, tx, invoice.ID, invoice.Items); err != nil {
				return err
			}
		}
		return s.repo.Update(ctx, tx, invoice)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	if markingPaid {
		return s.MarkPaid(ctx, tenantID, id)
	}
	return *invoice, nil
}

func (s *Service) Delete(ctx context.Context, tenantID snowflake.ID, id string) error {
	invoiceID, err := parseID(id)
	if err != nil {
		return err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, tenantID, invoiceID)
}

// MarkPaid settles the invoice and records a completed payment that
// mirrors the invoice total. Both writes share one transaction so a
// paid invoice can never exist without its payment.
func (s *Service) MarkPaid(ctx context.Context, tenantID snowflake.ID, id string) (domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, tenantID, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	if invoice.Status == domain.InvoiceStatusPaid {
		return domain.Invoice{}, domain.ErrAlreadyPaid
	}

	now := s.clock.Now().UTC()
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidAt = &now
	invoice.UpdatedAt = now

	settlement := paymentdomain.Payment{
		ID:          s.genID.Generate(),
		TenantID:    tenantID,
		ClientID:    invoice.ClientID,
		ProjectID:   invoice.ProjectID,
		InvoiceID:   &invoice.ID,
		Amount:      invoice.Total,
		Method:      paymentdomain.PaymentMethodBankTransfer,
		Status:      paymentdomain.PaymentStatusCompleted,
		Type:        paymentdomain.PaymentTypeFull,
		Date:        now,
		Description: fmt.Sprintf("Payment for invoice %s", invoice.InvoiceNumber),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, invoice); err != nil {
			return err
		}
		return tx.WithContext(ctx).Create(&settlement).Error
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.RecordInvoicePaid(ctx)
	s.log.Info("invoice paid",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("payment_id", settlement.ID.String()),
	)
	return *invoice, nil
}

func buildItems(genID *snowflake.Node, reqs []domain.InvoiceItemRequest) ([]domain.InvoiceItem, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrInvalidItems
	}
	items := make([]domain.InvoiceItem, 0, len(reqs))
	for _, item := range reqs {
		description := strings.TrimSpace(item.Description)
		if description == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, domain.ErrInvalidItems
		}
		items = append(items, domain.InvoiceItem{
			ID:          genID.Generate(),
			Description: description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Quantity * item.UnitPrice,
		})
	}
	return items, nil
}

func computeTotals(items []domain.InvoiceItem, taxRate, discount float64) (subtotal, taxAmount, total float64) {
	for _, item := range items {
		subtotal += item.Quantity * item.UnitPrice
	}
	taxAmount = subtotal * taxRate / 100
	total = subtotal + taxAmount - discount
	return subtotal, taxAmount, total
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
