package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type createProjectRequest struct {
	ClientID     string   `json:"client_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	Budget       *float64 `json:"budget"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Tags         []string `json:"tags"`
	Deliverables []string `json:"deliverables"`
}

func (s *Server) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	endDate, err := parseOptionalTime(req.EndDate, true)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.projectSvc.Create(c.Request.Context(), tenantID(c), projectdomain.CreateProjectRequest{
		ClientID:     strings.TrimSpace(req.ClientID),
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Status:       projectdomain.ProjectStatus(req.Status),
		Priority:     projectdomain.ProjectPriority(req.Priority),
		Budget:       req.Budget,
		StartDate:    startDate,
		EndDate:      endDate,
		Tags:         req.Tags,
		Deliverables: req.Deliverables,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListProjects(c *gin.Context) {
	var query struct {
		pagination.Params
		ClientID string `form:"client_id"`
		Status   string `form:"status"`
		Priority string `form:"priority"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	clientID, err := parseOptionalSnowflakeID(query.ClientID)
	if err != nil {
		AbortWithError(c, projectdomain.ErrInvalidClient)
		return
	}

	resp, err := s.projectSvc.List(c.Request.Context(), tenantID(c), projectdomain.ListProjectRequest{
		Params:   query.Params,
		ClientID: clientID,
		Status:   projectdomain.ProjectStatus(strings.TrimSpace(query.Status)),
		Priority: projectdomain.ProjectPriority(strings.TrimSpace(query.Priority)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetProject(c *gin.Context) {
	resp, err := s.projectSvc.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateProjectRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Status       *string  `json:"status"`
	Priority     *string  `json:"priority"`
	Budget       *float64 `json:"budget"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Tags         []string `json:"tags"`
	Deliverables []string `json:"deliverables"`
}

func (s *Server) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := projectdomain.UpdateProjectRequest{
		Name:         req.Name,
		Description:  req.Description,
		Budget:       req.Budget,
		Tags:         req.Tags,
		Deliverables: req.Deliverables,
	}
	if req.Status != nil {
		status := projectdomain.ProjectStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := projectdomain.ProjectPriority(*req.Priority)
		update.Priority = &priority
	}
	if req.StartDate != nil {
		startDate, err := parseOptionalTime(*req.StartDate, false)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		update.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalTime(*req.EndDate, true)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		update.EndDate = endDate
	}

	resp, err := s.projectSvc.Update(c.Request.Context(), tenantID(c), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteProject(c *gin.Context) {
	if err := s.projectSvc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
