package service

import (
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/internal/expense/domain"
	"github.com/ledgique/ledgique/internal/expense/repository"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	"github.com/ledgique/ledgique/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node, snowflake.ID) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&domain.Expense{},
		&clientdomain.Client{},
		&projectdomain.Project{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})

	return svc, gdb, node, node.Generate()
}

func TestCreateAssignsReceiptRef(t *testing.T) {
	svc, _, _, tenantID := newService(t)
	ctx := context.Background()

	expense, err := svc.Create(ctx, tenantID, domain.CreateExpenseRequest{
		Description: "Conference travel",
		Amount:      420.50,
		Category:    domain.ExpenseCategoryTravel,
		HasReceipt:  true,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(expense.ReceiptRef, "rcpt_"))

	noReceipt, err := svc.Create(ctx, tenantID, domain.CreateExpenseRequest{
		Description: "Stock photos",
		Amount:      29,
		Category:    domain.ExpenseCategorySoftware,
	})
	require.NoError(t, err)
	require.Empty(t, noReceipt.ReceiptRef)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc, _, _, tenantID := newService(t)

	_, err := svc.Create(context.Background(), tenantID, domain.CreateExpenseRequest{
		Description: "Mystery",
		Amount:      10,
		Category:    domain.ExpenseCategory("GROCERIES"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestCreateValidatesClientOwnership(t *testing.T) {
	svc, gdb, node, tenantID := newService(t)
	ctx := context.Background()

	otherTenantClient := clientdomain.Client{
		ID:       node.Generate(),
		TenantID: node.Generate(),
		Name:     "Someone Else",
		Status:   clientdomain.ClientStatusActive,
	}
	require.NoError(t, gdb.Create(&otherTenantClient).Error)

	_, err := svc.Create(ctx, tenantID, domain.CreateExpenseRequest{
		ClientID:    &otherTenantClient.ID,
		Description: "Client dinner",
		Amount:      120,
		Category:    domain.ExpenseCategoryOther,
	})
	require.ErrorIs(t, err, domain.ErrInvalidClient)

	ownClient := clientdomain.Client{
		ID:       node.Generate(),
		TenantID: tenantID,
		Name:     "Acme Studio",
		Status:   clientdomain.ClientStatusActive,
	}
	require.NoError(t, gdb.Create(&ownClient).Error)

	expense, err := svc.Create(ctx, tenantID, domain.CreateExpenseRequest{
		ClientID:    &ownClient.ID,
		Description: "Client dinner",
		Amount:      120,
		Category:    domain.ExpenseCategoryOther,
	})
	require.NoError(t, err)
	require.NotNil(t, expense.ClientID)
	require.Equal(t, ownClient.ID, *expense.ClientID)
}
