package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type createInvoiceRequest struct {
	ClientID  string                             `json:"client_id"`
	ProjectID string                             `json:"project_id"`
	IssueDate string                             `json:"issue_date"`
	DueDate   string                             `json:"due_date"`
	TaxRate   float64                            `json:"tax_rate"`
	Discount  float64                            `json:"discount"`
	Notes     string                             `json:"notes"`
	Items     []invoicedomain.InvoiceItemRequest `json:"items"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	projectID, err := parseOptionalSnowflakeID(req.ProjectID)
	if err != nil {
		AbortWithError(c, invoicedomain.ErrInvalidProject)
		return
	}
	issueDate, err := parseOptionalTime(req.IssueDate, false)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), tenantID(c), invoicedomain.CreateInvoiceRequest{
		ClientID:  strings.TrimSpace(req.ClientID),
		ProjectID: projectID,
		IssueDate: issueDate,
		DueDate:   dueDate,
		TaxRate:   req.TaxRate,
		Discount:  req.Discount,
		Notes:     strings.TrimSpace(req.Notes),
		Items:     req.Items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Params
		ClientID  string `form:"client_id"`
		ProjectID string `form:"project_id"`
		Status    string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	clientID, err := parseOptionalSnowflakeID(query.ClientID)
	if err != nil {
		AbortWithError(c, invoicedomain.ErrInvalidClient)
		return
	}
	projectID, err := parseOptionalSnowflakeID(query.ProjectID)
	if err != nil {
		AbortWithError(c, invoicedomain.ErrInvalidProject)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), tenantID(c), invoicedomain.ListInvoiceRequest{
		Params:    query.Params,
		ClientID:  clientID,
		ProjectID: projectID,
		Status:    invoicedomain.InvoiceStatus(strings.TrimSpace(query.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateInvoiceRequest struct {
	Status   *string                            `json:"status"`
	DueDate  *string                            `json:"due_date"`
	TaxRate  *float64                           `json:"tax_rate"`
	Discount *float64                           `json:"discount"`
	Notes    *string                            `json:"notes"`
	Items    []invoicedomain.InvoiceItemRequest `json:"items"`
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := invoicedomain.UpdateInvoiceRequest{
		TaxRate:  req.TaxRate,
		Discount: req.Discount,
		Notes:    req.Notes,
		Items:    req.Items,
	}
	if req.Status != nil {
		status := invoicedomain.InvoiceStatus(*req.Status)
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

	resp, err := s.invoiceSvc.Update(c.Request.Context(), tenantID(c), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) MarkInvoicePaid(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkPaid(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	client, err := s.clientSvc.GetByID(c.Request.Context(), tenantID(c), invoice.ClientID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfRenderer.RenderInvoice(c.Request.Context(), invoice, client)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.InvoiceNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}
