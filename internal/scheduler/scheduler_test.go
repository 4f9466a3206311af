package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/clock"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	"github.com/ledgique/ledgique/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newScheduler(t *testing.T) (*Scheduler, *gorm.DB, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&invoicedomain.Invoice{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	sched, err := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		Clock: fake,
	})
	require.NoError(t, err)

	return sched, gdb, node, fake
}

func addInvoice(t *testing.T, gdb *gorm.DB, node *snowflake.Node, status invoicedomain.InvoiceStatus, due time.Time) snowflake.ID {
	t.Helper()

	invoice := invoicedomain.Invoice{
		ID:            node.Generate(),
		TenantID:      node.Generate(),
		ClientID:      node.Generate(),
		InvoiceNumber: "INV-2024-" + node.Generate().String(),
		Status:        status,
		IssueDate:     due.AddDate(0, 0, -30),
		DueDate:       due,
	}
	require.NoError(t, gdb.Create(&invoice).Error)
	return invoice.ID
}

func statusOf(t *testing.T, gdb *gorm.DB, id snowflake.ID) invoicedomain.InvoiceStatus {
	t.Helper()

	var invoice invoicedomain.Invoice
	require.NoError(t, gdb.First(&invoice, "id = ?", id).Error)
	return invoice.Status
}

func TestSweepMarksSentInvoicesOverdue(t *testing.T) {
	sched, gdb, node, fake := newScheduler(t)
	ctx := context.Background()

	now := fake.Now()
	pastDue := addInvoice(t, gdb, node, invoicedomain.InvoiceStatusSent, now.AddDate(0, 0, -3))
	notDue := addInvoice(t, gdb, node, invoicedomain.InvoiceStatusSent, now.AddDate(0, 0, 3))
	draft := addInvoice(t, gdb, node, invoicedomain.InvoiceStatusDraft, now.AddDate(0, 0, -3))
	paid := addInvoice(t, gdb, node, invoicedomain.InvoiceStatusPaid, now.AddDate(0, 0, -3))

	flipped, err := sched.SweepOverdueInvoices(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, flipped)

	require.Equal(t, invoicedomain.InvoiceStatusOverdue, statusOf(t, gdb, pastDue))
	require.Equal(t, invoicedomain.InvoiceStatusSent, statusOf(t, gdb, notDue))
	require.Equal(t, invoicedomain.InvoiceStatusDraft, statusOf(t, gdb, draft))
	require.Equal(t, invoicedomain.InvoiceStatusPaid, statusOf(t, gdb, paid))
}

func TestSweepPicksUpInvoicesAsTimeAdvances(t *testing.T) {
	sched, gdb, node, fake := newScheduler(t)
	ctx := context.Background()

	id := addInvoice(t, gdb, node, invoicedomain.InvoiceStatusSent, fake.Now().AddDate(0, 0, 2))

	flipped, err := sched.SweepOverdueInvoices(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, flipped)
	require.Equal(t, invoicedomain.InvoiceStatusSent, statusOf(t, gdb, id))

	fake.Advance(72 * time.Hour)

	flipped, err = sched.SweepOverdueInvoices(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, flipped)
	require.Equal(t, invoicedomain.InvoiceStatusOverdue, statusOf(t, gdb, id))

	// A second pass finds nothing left to flip.
	flipped, err = sched.SweepOverdueInvoices(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, flipped)
}
