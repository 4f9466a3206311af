package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/project/domain"
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
		log:   p.Log.Named("project.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, req domain.CreateProjectRequest) (domain.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Project{}, domain.ErrInvalidName
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Project{}, domain.ErrInvalidClient
	}
	exists, err := s.repo.ClientExists(ctx, s.db, tenantID, clientID)
	if err != nil {
		return domain.Project{}, err
	}
	if !exists {
		return domain.Project{}, domain.ErrInvalidClient
	}

	status := req.Status
	if status == "" {
		status = domain.ProjectStatusPending
	}
	if !domain.ValidStatus(status) {
		return domain.Project{}, domain.ErrInvalidStatus
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.ProjectPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return domain.Project{}, domain.ErrInvalidPriority
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:           s.genID.Generate(),
		TenantID:     tenantID,
		ClientID:     clientID,
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Status:       status,
		Priority:     priority,
		Budget:       req.Budget,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Tags:         cleanList(req.Tags),
		Deliverables: cleanList(req.Deliverables),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, req domain.ListProjectRequest) (pagination.Page[domain.Project], error) {
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return pagination.Page[domain.Project]{}, domain.ErrInvalidStatus
	}
	if req.Priority != "" && !domain.ValidPriority(req.Priority) {
		return pagination.Page[domain.Project]{}, domain.ErrInvalidPriority
	}

	filter := domain.ListProjectFilter{
		ClientID: req.ClientID,
		Status:   req.Status,
		Priority: req.Priority,
	}

	projects, total, err := s.repo.List(ctx, s.db, tenantID, filter, req.Params)
	if err != nil {
		return pagination.Page[domain.Project]{}, err
	}
	return pagination.NewPage(projects, req.Params, total), nil
}

func (s *Service) GetByID(ctx context.Context, tenantID snowflake.ID, id string) (domain.Project, error) {
	projectID, err := parseID(id)
	if err != nil {
		return domain.Project{}, err
	}

	project, err := s.repo.FindByID(ctx, s.db, tenantID, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrNotFound
	}
	return *project, nil
}

func (s *Service) Update(ctx context.Context, tenantID snowflake.ID, id string, req domain.UpdateProjectRequest) (domain.Project, error) {
	projectID, err := parseID(id)
	if err != nil {
		return domain.Project{}, err
	}

	project, err := s.repo.FindByID(ctx, s.db, tenantID, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Project{}, domain.ErrInvalidName
		}
		project.Name = name
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return domain.Project{}, domain.ErrInvalidStatus
		}
		project.Status = *req.Status
	}
	if req.Priority != nil {
		if !domain.ValidPriority(*req.Priority) {
			return domain.Project{}, domain.ErrInvalidPriority
		}
		project.Priority = *req.Priority
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Tags != nil {
		project.Tags = cleanList(req.Tags)
	}
	if req.Deliverables != nil {
		project.Deliverables = cleanList(req.Deliverables)
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, project); err != nil {
		return domain.Project{}, err
	}
	return *project, nil
}

func (s *Service) Delete(ctx context.Context, tenantID snowflake.ID, id string) error {
	projectID, err := parseID(id)
	if err != nil {
		return err
	}

	project, err := s.repo.FindByID(ctx, s.db, tenantID, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, tenantID, projectID)
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
