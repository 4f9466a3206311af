package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	retainerdomain "github.com/ledgique/ledgique/internal/retainer/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type createRetainerRequest struct {
	ClientID   string   `json:"client_id"`
	ProjectID  string   `json:"project_id"`
	Name       string   `json:"name"`
	Amount     float64  `json:"amount"`
	HourlyRate *float64 `json:"hourly_rate"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
}

func (s *Server) CreateRetainer(c *gin.Context) {
	var req createRetainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	projectID, err := parseOptionalSnowflakeID(req.ProjectID)
	if err != nil {
		AbortWithError(c, retainerdomain.ErrInvalidID)
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

	resp, err := s.retainerSvc.Create(c.Request.Context(), tenantID(c), retainerdomain.CreateRetainerRequest{
		ClientID:   strings.TrimSpace(req.ClientID),
		ProjectID:  projectID,
		Name:       strings.TrimSpace(req.Name),
		Amount:     req.Amount,
		HourlyRate: req.HourlyRate,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListRetainers(c *gin.Context) {
	var query struct {
		pagination.Params
		ClientID string `form:"client_id"`
		Status   string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	clientID, err := parseOptionalSnowflakeID(query.ClientID)
	if err != nil {
		AbortWithError(c, retainerdomain.ErrInvalidClient)
		return
	}

	resp, err := s.retainerSvc.List(c.Request.Context(), tenantID(c), retainerdomain.ListRetainerRequest{
		Params:   query.Params,
		ClientID: clientID,
		Status:   retainerdomain.RetainerStatus(strings.TrimSpace(query.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetRetainer(c *gin.Context) {
	resp, err := s.retainerSvc.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateRetainerRequest struct {
	Name    *string `json:"name"`
	Status  *string `json:"status"`
	EndDate *string `json:"end_date"`
}

func (s *Server) UpdateRetainer(c *gin.Context) {
	var req updateRetainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := retainerdomain.UpdateRetainerRequest{
		Name: req.Name,
	}
	if req.Status != nil {
		status := retainerdomain.RetainerStatus(*req.Status)
		update.Status = &status
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalTime(*req.EndDate, true)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		update.EndDate = endDate
	}

	resp, err := s.retainerSvc.Update(c.Request.Context(), tenantID(c), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteRetainer(c *gin.Context) {
	if err := s.retainerSvc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type recordUsageRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (s *Server) RecordRetainerUsage(c *gin.Context) {
	var req recordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.retainerSvc.RecordUsage(c.Request.Context(), tenantID(c), c.Param("id"), retainerdomain.RecordUsageRequest{
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListRetainerUsage(c *gin.Context) {
	resp, err := s.retainerSvc.ListUsage(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resp})
}
