package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/internal/clock"
	"github.com/ledgique/ledgique/internal/config"
	expensedomain "github.com/ledgique/ledgique/internal/expense/domain"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	"github.com/ledgique/ledgique/internal/report/domain"
	"github.com/ledgique/ledgique/internal/report/repository"
	"github.com/ledgique/ledgique/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	clock    *clock.FakeClock
	service  domain.Service
	tenantID snowflake.ID
	clientID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&clientdomain.Client{},
		&projectdomain.Project{},
		&paymentdomain.Payment{},
		&expensedomain.Expense{},
		&invoicedomain.Invoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewReportingConfigHolder()
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:        gdb,
		Log:       zap.NewNop(),
		Clock:     fake,
		Repo:      repository.Provide(),
		Reporting: holder,
	})

	tenantID := node.Generate()
	client := clientdomain.Client{
		ID:        node.Generate(),
		TenantID:  tenantID,
		Name:      "Acme Studio",
		Status:    clientdomain.ClientStatusActive,
		CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, gdb.Create(&client).Error)

	return &fixture{
		db:       gdb,
		node:     node,
		clock:    fake,
		service:  svc,
		tenantID: tenantID,
		clientID: client.ID,
	}
}

func (f *fixture) addPayment(t *testing.T, amount float64, status paymentdomain.PaymentStatus, date time.Time) {
	t.Helper()
	payment := paymentdomain.Payment{
		ID:       f.node.Generate(),
		TenantID: f.tenantID,
		ClientID: f.clientID,
		Amount:   amount,
		Method:   paymentdomain.PaymentMethodBankTransfer,
		Status:   status,
		Type:     paymentdomain.PaymentTypeFull,
		Date:     date,
	}
	require.NoError(t, f.db.Create(&payment).Error)
}

func (f *fixture) addExpense(t *testing.T, amount float64, category expensedomain.ExpenseCategory, date time.Time) {
	t.Helper()
	expense := expensedomain.Expense{
		ID:          f.node.Generate(),
		TenantID:    f.tenantID,
		Description: "expense",
		Amount:      amount,
		Category:    category,
		Date:        date,
	}
	require.NoError(t, f.db.Create(&expense).Error)
}

func TestPaymentReportSeparatesRevenueAndPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	f.addPayment(t, 1000, paymentdomain.PaymentStatusCompleted, march)
	f.addPayment(t, 400, paymentdomain.PaymentStatusCompleted, march)
	f.addPayment(t, 250, paymentdomain.PaymentStatusPending, march)

	report, err := f.service.PaymentReport(ctx, f.tenantID, domain.Window{})
	require.NoError(t, err)
	require.InDelta(t, 1400.0, report.TotalRevenue, 1e-9)
	require.InDelta(t, 250.0, report.PendingAmount, 1e-9)
	require.EqualValues(t, 3, report.PaymentCount)

	// Default window is the configured trailing months.
	require.Len(t, report.MonthlyTrends, 12)
	require.Equal(t, "Mar", report.MonthlyTrends[11].Month)
	require.InDelta(t, 1400.0, report.MonthlyTrends[11].Value, 1e-9)
}

func TestExpenseReportBreaksDownByCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	f.addExpense(t, 600, expensedomain.ExpenseCategorySoftware, march)
	f.addExpense(t, 400, expensedomain.ExpenseCategoryTravel, march)

	report, err := f.service.ExpenseReport(ctx, f.tenantID, domain.Window{})
	require.NoError(t, err)
	require.InDelta(t, 1000.0, report.TotalExpenses, 1e-9)
	require.InDelta(t, 60.0, report.CategoryBreakdown["SOFTWARE"].Percent, 1e-9)
	require.InDelta(t, 40.0, report.CategoryBreakdown["TRAVEL"].Percent, 1e-9)
}

func TestDashboardSummaryComparesMonths(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	february := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	f.addPayment(t, 1000, paymentdomain.PaymentStatusCompleted, february)
	f.addPayment(t, 1500, paymentdomain.PaymentStatusCompleted, march)

	summary, err := f.service.DashboardSummary(ctx, f.tenantID)
	require.NoError(t, err)
	require.InDelta(t, 1500.0, summary.TotalRevenue, 1e-9)
	require.Equal(t, "+50.0%", summary.RevenueChange)
	require.EqualValues(t, 1, summary.ActiveClients)
}

func TestPaymentsChangeZeroBaseline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addPayment(t, 800, paymentdomain.PaymentStatusCompleted, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	delta, err := f.service.PaymentsChange(ctx, f.tenantID)
	require.NoError(t, err)
	require.InDelta(t, 800.0, delta.Current, 1e-9)
	require.Equal(t, "+100%", delta.Change)
}
