package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/internal/clock"
	"github.com/ledgique/ledgique/internal/invoice/domain"
	"github.com/ledgique/ledgique/internal/invoice/repository"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	"github.com/ledgique/ledgique/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	clock    *clock.FakeClock
	service  domain.Service
	tenantID snowflake.ID
	clientID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&clientdomain.Client{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
		&domain.InvoiceCounter{},
		&paymentdomain.Payment{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
	})

	tenantID := node.Generate()
	client := clientdomain.Client{
		ID:       node.Generate(),
		TenantID: tenantID,
		Name:     "Acme Studio",
		Status:   clientdomain.ClientStatusActive,
	}
	require.NoError(t, gdb.Create(&client).Error)

	return &fixture{
		db:       gdb,
		clock:    fake,
		service:  svc,
		tenantID: tenantID,
		clientID: client.ID,
	}
}

func (f *fixture) create(t *testing.T, req domain.CreateInvoiceRequest) domain.Invoice {
	t.Helper()
	if req.ClientID == "" {
		req.ClientID = f.clientID.String()
	}
	invoice, err := f.service.Create(context.Background(), f.tenantID, req)
	require.NoError(t, err)
	return invoice
}

func TestCreateComputesTotals(t *testing.T) {
	f := newFixture(t)

	invoice := f.create(t, domain.CreateInvoiceRequest{
		TaxRate:  10,
		Discount: 5,
		Items: []domain.InvoiceItemRequest{
			{Description: "Design", Quantity: 2, UnitPrice: 50},
			{Description: "Hosting", Quantity: 1, UnitPrice: 30},
		},
	})

	require.InDelta(t, 130.0, invoice.Subtotal, 1e-9)
	require.InDelta(t, 13.0, invoice.TaxAmount, 1e-9)
	require.InDelta(t, 138.0, invoice.Total, 1e-9)
	require.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	require.Len(t, invoice.Items, 2)
	require.InDelta(t, 100.0, invoice.Items[0].Amount, 1e-9)
}

func TestCreateAppliesDiscount(t *testing.T) {
	f := newFixture(t)

	invoice := f.create(t, domain.CreateInvoiceRequest{
		TaxRate:  10,
		Discount: 8,
		Items: []domain.InvoiceItemRequest{
			{Description: "Retainer", Quantity: 1, UnitPrice: 130},
		},
	})

	require.InDelta(t, 130.0, invoice.Subtotal, 1e-9)
	require.InDelta(t, 135.0, invoice.Total, 1e-9)
}

func TestInvoiceNumbersAreSequentialPerYear(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, domain.CreateInvoiceRequest{
		Items: []domain.InvoiceItemRequest{{Description: "Work", Quantity: 1, UnitPrice: 100}},
	})
	second := f.create(t, domain.CreateInvoiceRequest{
		Items: []domain.InvoiceItemRequest{{Description: "Work", Quantity: 1, UnitPrice: 100}},
	})

	require.Equal(t, "INV-2024-001", first.InvoiceNumber)
	require.Equal(t, "INV-2024-002", second.InvoiceNumber)

	f.clock.Advance(365 * 24 * time.Hour)
	third := f.create(t, domain.CreateInvoiceRequest{
		Items: []domain.InvoiceItemRequest{{Description: "Work", Quantity: 1, UnitPrice: 100}},
	})
	require.Equal(t, "INV-2025-001", third.InvoiceNumber)
}

func TestMarkPaidCreatesSettlementPayment(t *testing.T) {
	f := newFixture(t)

	invoice := f.create(t, domain.CreateInvoiceRequest{
		Items: []domain.InvoiceItemRequest{{Description: "Build", Quantity: 1, UnitPrice: 500}},
	})

	paid, err := f.service.MarkPaid(context.Background(), f.tenantID, invoice.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	var payments []paymentdomain.Payment
	require.NoError(t, f.db.Where("invoice_id = ?", invoice.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	require.Equal(t, paymentdomain.PaymentStatusCompleted, payments[0].Status)
	require.InDelta(t, 500.0, payments[0].Amount, 1e-9)
	require.Equal(t, invoice.ClientID, payments[0].ClientID)

	_, err = f.service.MarkPaid(context.Background(), f.tenantID, invoice.ID.String())
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestCreateRejectsUnknownClient(t *testing.T) {
	f := newFixture(t)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), f.tenantID, domain.CreateInvoiceRequest{
		ClientID: node.Generate().String(),
		Items:    []domain.InvoiceItemRequest{{Description: "Work", Quantity: 1, UnitPrice: 10}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidClient)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), f.tenantID, domain.CreateInvoiceRequest{
		ClientID: f.clientID.String(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidItems)
}

func TestUpdateRejectsPaidInvoice(t *testing.T) {
	f := newFixture(t)

	invoice := f.create(t, domain.CreateInvoiceRequest{
		Items: []domain.InvoiceItemRequest{{Description: "Work", Quantity: 1, UnitPrice: 200}},
	})
	_, err := f.service.MarkPaid(context.Background(), f.tenantID, invoice.ID.String())
	require.NoError(t, err)

	notes := "late edit"
	_, err = f.service.Update(context.Background(), f.tenantID, invoice.ID.String(), domain.UpdateInvoiceRequest{
		Notes: &notes,
	})
	require.ErrorIs(t, err, domain.ErrNotEditable)
}
