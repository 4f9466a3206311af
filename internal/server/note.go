package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	notedomain "github.com/ledgique/ledgique/internal/note/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type createNoteRequest struct {
	ClientID  string   `json:"client_id"`
	ProjectID string   `json:"project_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Type      string   `json:"type"`
	Priority  string   `json:"priority"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
	DueDate   string   `json:"due_date"`
}

func (s *Server) CreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	clientID, err := parseOptionalSnowflakeID(req.ClientID)
	if err != nil {
		AbortWithError(c, notedomain.ErrInvalidClient)
		return
	}
	projectID, err := parseOptionalSnowflakeID(req.ProjectID)
	if err != nil {
		AbortWithError(c, notedomain.ErrInvalidProject)
		return
	}
	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.noteSvc.Create(c.Request.Context(), tenantID(c), notedomain.CreateNoteRequest{
		ClientID:  clientID,
		ProjectID: projectID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Type:      notedomain.NoteType(req.Type),
		Priority:  notedomain.NotePriority(req.Priority),
		Status:    notedomain.NoteStatus(req.Status),
		Tags:      req.Tags,
		DueDate:   dueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListNotes(c *gin.Context) {
	var query struct {
		pagination.Params
		ClientID  string `form:"client_id"`
		ProjectID string `form:"project_id"`
		Type      string `form:"type"`
		Status    string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	clientID, err := parseOptionalSnowflakeID(query.ClientID)
	if err != nil {
		AbortWithError(c, notedomain.ErrInvalidClient)
		return
	}
	projectID, err := parseOptionalSnowflakeID(query.ProjectID)
	if err != nil {
		AbortWithError(c, notedomain.ErrInvalidProject)
		return
	}

	resp, err := s.noteSvc.List(c.Request.Context(), tenantID(c), notedomain.ListNoteRequest{
		Params:    query.Params,
		ClientID:  clientID,
		ProjectID: projectID,
		Type:      notedomain.NoteType(strings.TrimSpace(query.Type)),
		Status:    notedomain.NoteStatus(strings.TrimSpace(query.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetNote(c *gin.Context) {
	resp, err := s.noteSvc.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateNoteRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Type     *string  `json:"type"`
	Priority *string  `json:"priority"`
	Status   *string  `json:"status"`
	Tags     []string `json:"tags"`
	DueDate  *string  `json:"due_date"`
}

func (s *Server) UpdateNote(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := notedomain.UpdateNoteRequest{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}
	if req.Type != nil {
		noteType := notedomain.NoteType(*req.Type)
		update.Type = &noteType
	}
	if req.Priority != nil {
		priority := notedomain.NotePriority(*req.Priority)
		update.Priority = &priority
	}
	if req.Status != nil {
		status := notedomain.NoteStatus(*req.Status)
		update.Status = &status
	}
	if req.DueDate != nil {
		dueDate, err := parseOptionalTime(*req.DueDate, true)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		update.DueDate = dueDate
	}

	resp, err := s.noteSvc.Update(c.Request.Context(), tenantID(c), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteNote(c *gin.Context) {
	if err := s.noteSvc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
