package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/internal/retainer/domain"
	"github.com/ledgique/ledgique/internal/retainer/repository"
	"github.com/ledgique/ledgique/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (domain.Service, snowflake.ID, snowflake.ID) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&clientdomain.Client{},
		&domain.Retainer{},
		&domain.RetainerUsage{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
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

	return svc, tenantID, client.ID
}

func TestRecordUsageDecrementsBalance(t *testing.T) {
	svc, tenantID, clientID := newService(t)
	ctx := context.Background()

	retainer, err := svc.Create(ctx, tenantID, domain.CreateRetainerRequest{
		ClientID: clientID.String(),
		Name:     "Q1 support",
		Amount:   1000,
	})
	require.NoError(t, err)
	require.InDelta(t, 1000.0, retainer.RemainingAmount, 1e-9)

	updated, err := svc.RecordUsage(ctx, tenantID, retainer.ID.String(), domain.RecordUsageRequest{
		Amount:      250,
		Description: "March sprint",
	})
	require.NoError(t, err)
	require.InDelta(t, 750.0, updated.RemainingAmount, 1e-9)
	require.Equal(t, domain.RetainerStatusActive, updated.Status)

	usages, err := svc.ListUsage(ctx, tenantID, retainer.ID.String())
	require.NoError(t, err)
	require.Len(t, usages, 1)
	require.InDelta(t, 250.0, usages[0].Amount, 1e-9)
}

func TestRecordUsageRejectsOverdraw(t *testing.T) {
	svc, tenantID, clientID := newService(t)
	ctx := context.Background()

	retainer, err := svc.Create(ctx, tenantID, domain.CreateRetainerRequest{
		ClientID: clientID.String(),
		Name:     "Small retainer",
		Amount:   100,
	})
	require.NoError(t, err)

	_, err = svc.RecordUsage(ctx, tenantID, retainer.ID.String(), domain.RecordUsageRequest{Amount: 150})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Balance is untouched and no usage row was written.
	current, err := svc.GetByID(ctx, tenantID, retainer.ID.String())
	require.NoError(t, err)
	require.InDelta(t, 100.0, current.RemainingAmount, 1e-9)

	usages, err := svc.ListUsage(ctx, tenantID, retainer.ID.String())
	require.NoError(t, err)
	require.Empty(t, usages)
}

func TestRecordUsageExhaustsRetainer(t *testing.T) {
	svc, tenantID, clientID := newService(t)
	ctx := context.Background()

	retainer, err := svc.Create(ctx, tenantID, domain.CreateRetainerRequest{
		ClientID: clientID.String(),
		Name:     "One-shot",
		Amount:   300,
	})
	require.NoError(t, err)

	updated, err := svc.RecordUsage(ctx, tenantID, retainer.ID.String(), domain.RecordUsageRequest{Amount: 300})
	require.NoError(t, err)
	require.InDelta(t, 0.0, updated.RemainingAmount, 1e-9)
	require.Equal(t, domain.RetainerStatusExhausted, updated.Status)

	_, err = svc.RecordUsage(ctx, tenantID, retainer.ID.String(), domain.RecordUsageRequest{Amount: 1})
	require.ErrorIs(t, err, domain.ErrNotActive)
}
