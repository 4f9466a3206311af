package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type createClientRequest struct {
	Name     string   `json:"name"`
	Company  string   `json:"company"`
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	Status   string   `json:"status"`
	SourceID string   `json:"source_id"`
}

func (s *Server) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	sourceID, err := parseOptionalSnowflakeID(req.SourceID)
	if err != nil {
		AbortWithError(c, clientdomain.ErrInvalidSource)
		return
	}

	resp, err := s.clientSvc.Create(c.Request.Context(), tenantID(c), clientdomain.CreateClientRequest{
		Name:     strings.TrimSpace(req.Name),
		Company:  strings.TrimSpace(req.Company),
		Emails:   req.Emails,
		Phones:   req.Phones,
		Status:   clientdomain.ClientStatus(req.Status),
		SourceID: sourceID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListClients(c *gin.Context) {
	var query struct {
		pagination.Params
		Status   string `form:"status"`
		SourceID string `form:"source_id"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	sourceID, err := parseOptionalSnowflakeID(query.SourceID)
	if err != nil {
		AbortWithError(c, clientdomain.ErrInvalidSource)
		return
	}

	resp, err := s.clientSvc.List(c.Request.Context(), tenantID(c), clientdomain.ListClientRequest{
		Params:   query.Params,
		Status:   clientdomain.ClientStatus(strings.TrimSpace(query.Status)),
		SourceID: sourceID,
		Search:   strings.TrimSpace(query.Search),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetClient(c *gin.Context) {
	resp, err := s.clientSvc.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateClientRequest struct {
	Name     *string  `json:"name"`
	Company  *string  `json:"company"`
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	Status   *string  `json:"status"`
	SourceID *string  `json:"source_id"`
}

func (s *Server) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := clientdomain.UpdateClientRequest{
		Name:    req.Name,
		Company: req.Company,
		Emails:  req.Emails,
		Phones:  req.Phones,
	}
	if req.Status != nil {
		status := clientdomain.ClientStatus(*req.Status)
		update.Status = &status
	}
	if req.SourceID != nil {
		sourceID, err := parseOptionalSnowflakeID(*req.SourceID)
		if err != nil {
			AbortWithError(c, clientdomain.ErrInvalidSource)
			return
		}
		update.SourceID = sourceID
	}

	resp, err := s.clientSvc.Update(c.Request.Context(), tenantID(c), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteClient(c *gin.Context) {
	if err := s.clientSvc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type createClientSourceRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateClientSource(c *gin.Context) {
	var req createClientSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.clientSvc.CreateSource(c.Request.Context(), tenantID(c), clientdomain.CreateSourceRequest{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListClientSources(c *gin.Context) {
	resp, err := s.clientSvc.ListSources(c.Request.Context(), tenantID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (s *Server) DeleteClientSource(c *gin.Context) {
	if err := s.clientSvc.DeleteSource(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
