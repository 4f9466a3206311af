package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/internal/client/repository"
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
		&domain.Client{},
		&domain.ClientSource{},
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

func TestCreateDefaultsToActive(t *testing.T) {
	svc, _, _, tenantID := newService(t)
	ctx := context.Background()

	client, err := svc.Create(ctx, tenantID, domain.CreateClientRequest{
		Name:   "Acme Studio",
		Emails: []string{"billing@acme.test", "  "},
	})
	require.NoError(t, err)
	require.Equal(t, domain.ClientStatusActive, client.Status)
	require.Equal(t, []string{"billing@acme.test"}, []string(client.Emails))
}

func TestDeleteRestrictedWhileProjectsExist(t *testing.T) {
	svc, gdb, node, tenantID := newService(t)
	ctx := context.Background()

	client, err := svc.Create(ctx, tenantID, domain.CreateClientRequest{Name: "Acme Studio"})
	require.NoError(t, err)

	project := projectdomain.Project{
		ID:       node.Generate(),
		TenantID: tenantID,
		ClientID: client.ID,
		Name:     "Website rebuild",
		Status:   projectdomain.ProjectStatusInProgress,
		Priority: projectdomain.ProjectPriorityMedium,
	}
	require.NoError(t, gdb.Create(&project).Error)

	require.ErrorIs(t, svc.Delete(ctx, tenantID, client.ID.String()), domain.ErrHasProjects)

	require.NoError(t, gdb.Delete(&project).Error)
	require.NoError(t, svc.Delete(ctx, tenantID, client.ID.String()))
}

func TestCreateSourceSlugsAreUniquePerTenant(t *testing.T) {
	svc, _, node, tenantID := newService(t)
	ctx := context.Background()

	source, err := svc.CreateSource(ctx, tenantID, domain.CreateSourceRequest{Name: "Word of Mouth"})
	require.NoError(t, err)
	require.Equal(t, "word-of-mouth", source.Slug)

	_, err = svc.CreateSource(ctx, tenantID, domain.CreateSourceRequest{Name: "Word of mouth"})
	require.ErrorIs(t, err, domain.ErrSourceExists)

	// Another tenant may reuse the slug.
	_, err = svc.CreateSource(ctx, node.Generate(), domain.CreateSourceRequest{Name: "Word of Mouth"})
	require.NoError(t, err)
}
