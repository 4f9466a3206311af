package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/pkg/db"
	"github.com/ledgique/ledgique/pkg/db/pagination"
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
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, req domain.CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	status := req.Status
	if status == "" {
		status = domain.ClientStatusActive
	}
	if !domain.ValidStatus(status) {
		return domain.Client{}, domain.ErrInvalidStatus
	}

	if req.SourceID != nil {
		source, err := s.repo.FindSourceByID(ctx, s.db, tenantID, *req.SourceID)
		if err != nil {
			return domain.Client{}, err
		}
		if source == nil {
			return domain.Client{}, domain.ErrInvalidSource
		}
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		Name:      name,
		Company:   strings.TrimSpace(req.Company),
		Emails:    cleanList(req.Emails),
		Phones:    cleanList(req.Phones),
		Status:    status,
		SourceID:  req.SourceID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, req domain.ListClientRequest) (pagination.Page[domain.Client], error) {
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return pagination.Page[domain.Client]{}, domain.ErrInvalidStatus
	}

	filter := domain.ListClientFilter{
		Status:   req.Status,
		SourceID: req.SourceID,
		Search:   strings.TrimSpace(req.Search),
	}

	clients, total, err := s.repo.List(ctx, s.db, tenantID, filter, req.Params)
	if err != nil {
		return pagination.Page[domain.Client]{}, err
	}
	return pagination.NewPage(clients, req.Params, total), nil
}

func (s *Service) GetByID(ctx context.Context, tenantID snowflake.ID, id string) (domain.Client, error) {
	clientID, err := parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *client, nil
}

func (s *Service) Update(ctx context.Context, tenantID snowflake.ID, id string, req domain.UpdateClientRequest) (domain.Client, error) {
	clientID, err := parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Client{}, domain.ErrInvalidName
		}
		client.Name = name
	}
	if req.Company != nil {
		client.Company = strings.TrimSpace(*req.Company)
	}
	if req.Emails != nil {
		client.Emails = cleanList(req.Emails)
	}
	if req.Phones != nil {
		client.Phones = cleanList(req.Phones)
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return domain.Client{}, domain.ErrInvalidStatus
		}
		client.Status = *req.Status
	}
	if req.SourceID != nil {
		source, err := s.repo.FindSourceByID(ctx, s.db, tenantID, *req.SourceID)
		if err != nil {
			return domain.Client{}, err
		}
		if source == nil {
			return domain.Client{}, domain.ErrInvalidSource
		}
		client.SourceID = req.SourceID
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, client); err != nil {
		return domain.Client{}, err
	}
	return *client, nil
}

// Delete removes a client. Deletion is restricted while projects still
// reference the client.
func (s *Service) Delete(ctx context.Context, tenantID snowflake.ID, id string) error {
	clientID, err := parseID(id)
	if err != nil {
		return err
	}

	client, err := s.repo.FindByID(ctx, s.db, tenantID, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}

	projects, err := s.repo.CountProjects(ctx, s.db, tenantID, clientID)
	if err != nil {
		return err
	}
	if projects > 0 {
		return domain.ErrHasProjects
	}

	return s.repo.Delete(ctx, s.db, tenantID, clientID)
}

func (s *Service) CreateSource(ctx context.Context, tenantID snowflake.ID, req domain.CreateSourceRequest) (domain.ClientSource, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ClientSource{}, domain.ErrInvalidName
	}

	source := domain.ClientSource{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.InsertSource(ctx, s.db, &source); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ClientSource{}, domain.ErrSourceExists
		}
		return domain.ClientSource{}, err
	}
	return source, nil
}

func (s *Service) ListSources(ctx context.Context, tenantID snowflake.ID) ([]domain.ClientSource, error) {
	return s.repo.ListSources(ctx, s.db, tenantID)
}

func (s *Service) DeleteSource(ctx context.Context, tenantID snowflake.ID, id string) error {
	sourceID, err := parseID(id)
	if err != nil {
		return err
	}

	source, err := s.repo.FindSourceByID(ctx, s.db, tenantID, sourceID)
	if err != nil {
		return err
	}
	if source == nil {
		return domain.ErrNotFound
	}
	return s.repo.DeleteSource(ctx, s.db, tenantID, sourceID)
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
