package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/internal/note/domain"
	"github.com/ledgique/ledgique/internal/note/repository"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	"github.com/ledgique/ledgique/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	service  domain.Service
	tenantID snowflake.ID
	clientID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&clientdomain.Client{}, &projectdomain.Project{}, &domain.Note{}))

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

	return &fixture{
		db:       gdb,
		node:     node,
		service:  svc,
		tenantID: tenantID,
		clientID: client.ID,
	}
}

func (f *fixture) addProject(t *testing.T, clientID snowflake.ID) projectdomain.Project {
	t.Helper()
	project := projectdomain.Project{
		ID:       f.node.Generate(),
		TenantID: f.tenantID,
		ClientID: clientID,
		Name:     "Website revamp",
		Status:   projectdomain.ProjectStatusInProgress,
		Priority: projectdomain.ProjectPriorityMedium,
	}
	require.NoError(t, f.db.Create(&project).Error)
	return project
}

func TestCompletedAtFollowsStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note, err := f.service.Create(ctx, f.tenantID, domain.CreateNoteRequest{
		Title: "Ship proposal",
		Type:  domain.NoteTypeTask,
	})
	require.NoError(t, err)
	require.Nil(t, note.CompletedAt)

	completed := domain.NoteStatusCompleted
	note, err = f.service.Update(ctx, f.tenantID, note.ID.String(), domain.UpdateNoteRequest{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, note.CompletedAt)

	reopened := domain.NoteStatusActive
	note, err = f.service.Update(ctx, f.tenantID, note.ID.String(), domain.UpdateNoteRequest{Status: &reopened})
	require.NoError(t, err)
	require.Nil(t, note.CompletedAt)
}

func TestCreateValidatesClientOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note, err := f.service.Create(ctx, f.tenantID, domain.CreateNoteRequest{
		Title:    "Call about renewal",
		ClientID: &f.clientID,
	})
	require.NoError(t, err)
	require.NotNil(t, note.ClientID)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	stranger := node.Generate()

	_, err = f.service.Create(ctx, f.tenantID, domain.CreateNoteRequest{
		Title:    "Orphan note",
		ClientID: &stranger,
	})
	require.ErrorIs(t, err, domain.ErrInvalidClient)
}

func TestCreateRejectsProjectOfAnotherClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := clientdomain.Client{
		ID:       f.node.Generate(),
		TenantID: f.tenantID,
		Name:     "Beta Corp",
		Status:   clientdomain.ClientStatusActive,
	}
	require.NoError(t, f.db.Create(&other).Error)
	project := f.addProject(t, other.ID)

	_, err := f.service.Create(ctx, f.tenantID, domain.CreateNoteRequest{
		Title:     "Cross-wired note",
		ClientID:  &f.clientID,
		ProjectID: &project.ID,
	})
	require.ErrorIs(t, err, domain.ErrProjectMismatch)

	// The same project is fine when paired with its own client.
	note, err := f.service.Create(ctx, f.tenantID, domain.CreateNoteRequest{
		Title:     "Kickoff recap",
		ClientID:  &other.ID,
		ProjectID: &project.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, note.ProjectID)
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), f.tenantID, domain.CreateNoteRequest{Title: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidTitle)
}
