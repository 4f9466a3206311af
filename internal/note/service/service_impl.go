package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/note/domain"
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
		log:   p.Log.Named("note.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, req domain.CreateNoteRequest) (domain.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Note{}, domain.ErrInvalidTitle
	}

	noteType := req.Type
	if noteType == "" {
		noteType = domain.NoteTypeGeneral
	}
	if !domain.ValidType(noteType) {
		return domain.Note{}, domain.ErrInvalidType
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.NotePriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return domain.Note{}, domain.ErrInvalidPriority
	}

	status := req.Status
	if status == "" {
		status = domain.NoteStatusActive
	}
	if !domain.ValidStatus(status) {
		return domain.Note{}, domain.ErrInvalidStatus
	}

	if req.ClientID != nil {
		ok, err := s.repo.ClientExists(ctx, s.db, tenantID, *req.ClientID)
		if err != nil {
			return domain.Note{}, err
		}
		if !ok {
			return domain.Note{}, domain.ErrInvalidClient
		}
	}
	if req.ProjectID != nil {
		ownerID, err := s.repo.ProjectClientID(ctx, s.db, tenantID, *req.ProjectID)
		if err != nil {
			return domain.Note{}, err
		}
		if ownerID == nil {
			return domain.Note{}, domain.ErrInvalidProject
		}
		// A note naming both sides must be internally consistent.
		if req.ClientID != nil && *ownerID != *req.ClientID {
			return domain.Note{}, domain.ErrProjectMismatch
		}
	}

	now := time.Now().UTC()
	note := domain.Note{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Title:     title,
		Content:   req.Content,
		Type:      noteType,
		Priority:  priority,
		Status:    status,
		Tags:      cleanList(req.Tags),
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == domain.NoteStatusCompleted {
		note.CompletedAt = &now
	}

	if err := s.repo.Insert(ctx, s.db, &note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID, req domain.ListNoteRequest) (pagination.Page[domain.Note], error) {
	if req.Type != "" && !domain.ValidType(req.Type) {
		return pagination.Page[domain.Note]{}, domain.ErrInvalidType
	}
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return pagination.Page[domain.Note]{}, domain.ErrInvalidStatus
	}

	filter := domain.ListNoteFilter{
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Type:      req.Type,
		Status:    req.Status,
	}

	notes, total, err := s.repo.List(ctx, s.db, tenantID, filter, req.Params)
	if err != nil {
		return pagination.Page[domain.Note]{}, err
	}
	return pagination.NewPage(notes, req.Params, total), nil
}

func (s *Service) GetByID(ctx context.Context, tenantID snowflake.ID, id string) (domain.Note, error) {
	noteID, err := parseID(id)
	if err != nil {
		return domain.Note{}, err
	}

	note, err := s.repo.FindByID(ctx, s.db, tenantID, noteID)
	if err != nil {
		return domain.Note{}, err
	}
	if note == nil {
		return domain.Note{}, domain.ErrNotFound
	}
	return *note, nil
}

func (s *Service) Update(ctx context.Context, tenantID snowflake.ID, id string, req domain.UpdateNoteRequest) (domain.Note, error) {
	noteID, err := parseID(id)
	if err != nil {
		return domain.Note{}, err
	}

	note, err := s.repo.FindByID(ctx, s.db, tenantID, noteID)
	if err != nil {
		return domain.Note{}, err
	}
	if note == nil {
		return domain.Note{}, domain.ErrNotFound
	}

	now := time.Now().UTC()
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Note{}, domain.ErrInvalidTitle
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Type != nil {
		if !domain.ValidType(*req.Type) {
			return domain.Note{}, domain.ErrInvalidType
		}
		note.Type = *req.Type
	}
	if req.Priority != nil {
		if !domain.ValidPriority(*req.Priority) {
			return domain.Note{}, domain.ErrInvalidPriority
		}
		note.Priority = *req.Priority
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return domain.Note{}, domain.ErrInvalidStatus
		}
		// CompletedAt tracks transitions into and out of COMPLETED.
		if *req.Status == domain.NoteStatusCompleted && note.Status != domain.NoteStatusCompleted {
			note.CompletedAt = &now
		}
		if *req.Status != domain.NoteStatusCompleted {
			note.CompletedAt = nil
		}
		note.Status = *req.Status
	}
	if req.Tags != nil {
		note.Tags = cleanList(req.Tags)
	}
	if req.DueDate != nil {
		note.DueDate = req.DueDate
	}
	note.UpdatedAt = now

	if err := s.repo.Update(ctx, s.db, note); err != nil {
		return domain.Note{}, err
	}
	return *note, nil
}

func (s *Service) Delete(ctx context.Context, tenantID snowflake.ID, id string) error {
	noteID, err := parseID(id)
	if err != nil {
		return err
	}

	note, err := s.repo.FindByID(ctx, s.db, tenantID, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, tenantID, noteID)
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
