package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type createPaymentRequest struct {
	ClientID    string  `json:"client_id"`
	ProjectID   string  `json:"project_id"`
	InvoiceID   string  `json:"invoice_id"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	projectID, err := parseOptionalSnowflakeID(req.ProjectID)
	if err != nil {
		AbortWithError(c, paymentdomain.ErrInvalidProject)
		return
	}
	invoiceID, err := parseOptionalSnowflakeID(req.InvoiceID)
	if err != nil {
		AbortWithError(c, paymentdomain.ErrInvalidID)
		return
	}
	date, err := parseOptionalTime(req.Date, false)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), tenantID(c), paymentdomain.CreatePaymentRequest{
		ClientID:    strings.TrimSpace(req.ClientID),
		ProjectID:   projectID,
		InvoiceID:   invoiceID,
		Amount:      req.Amount,
		Method:      paymentdomain.PaymentMethod(req.Method),
		Status:      paymentdomain.PaymentStatus(req.Status),
		Type:        paymentdomain.PaymentType(req.Type),
		Date:        date,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		pagination.Params
		ClientID  string `form:"client_id"`
		ProjectID string `form:"project_id"`
		Status    string `form:"status"`
		Method    string `form:"method"`
		From      string `form:"from"`
		To        string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	clientID, err := parseOptionalSnowflakeID(query.ClientID)
	if err != nil {
		AbortWithError(c, paymentdomain.ErrInvalidClient)
		return
	}
	projectID, err := parseOptionalSnowflakeID(query.ProjectID)
	if err != nil {
		AbortWithError(c, paymentdomain.ErrInvalidProject)
		return
	}
	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.paymentSvc.List(c.Request.Context(), tenantID(c), paymentdomain.ListPaymentRequest{
		Params:    query.Params,
		ClientID:  clientID,
		ProjectID: projectID,
		Status:    paymentdomain.PaymentStatus(strings.TrimSpace(query.Status)),
		Method:    paymentdomain.PaymentMethod(strings.TrimSpace(query.Method)),
		From:      from,
		To:        to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetPayment(c *gin.Context) {
	resp, err := s.paymentSvc.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updatePaymentRequest struct {
	Amount      *float64 `json:"amount"`
	Method      *string  `json:"method"`
	Status      *string  `json:"status"`
	Type        *string  `json:"type"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
}

func (s *Server) UpdatePayment(c *gin.Context) {
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := paymentdomain.UpdatePaymentRequest{
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Method != nil {
		method := paymentdomain.PaymentMethod(*req.Method)
		update.Method = &method
	}
	if req.Status != nil {
		status := paymentdomain.PaymentStatus(*req.Status)
		update.Status = &status
	}
	if req.Type != nil {
		paymentType := paymentdomain.PaymentType(*req.Type)
		update.Type = &paymentType
	}
	if req.Date != nil {
		date, err := parseOptionalTime(*req.Date, false)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		update.Date = date
	}

	resp, err := s.paymentSvc.Update(c.Request.Context(), tenantID(c), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeletePayment(c *gin.Context) {
	if err := s.paymentSvc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
