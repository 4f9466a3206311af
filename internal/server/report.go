package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/ledgique/ledgique/internal/report/domain"
)

func (s *Server) reportWindow(c *gin.Context) (reportdomain.Window, bool) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return reportdomain.Window{}, false
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return reportdomain.Window{}, false
	}
	return reportdomain.Window{From: from, To: to}, true
}

func (s *Server) ClientReport(c *gin.Context) {
	window, ok := s.reportWindow(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.ClientReport(c.Request.Context(), tenantID(c), window)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ProjectReport(c *gin.Context) {
	window, ok := s.reportWindow(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.ProjectReport(c.Request.Context(), tenantID(c), window)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) PaymentReport(c *gin.Context) {
	window, ok := s.reportWindow(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.PaymentReport(c.Request.Context(), tenantID(c), window)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ExpenseReport(c *gin.Context) {
	window, ok := s.reportWindow(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.ExpenseReport(c.Request.Context(), tenantID(c), window)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GrowthReport(c *gin.Context) {
	window, ok := s.reportWindow(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.GrowthReport(c.Request.Context(), tenantID(c), window)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DashboardSummary(c *gin.Context) {
	resp, err := s.reportSvc.DashboardSummary(c.Request.Context(), tenantID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ClientsChange(c *gin.Context) {
	resp, err := s.reportSvc.ClientsChange(c.Request.Context(), tenantID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ProjectsChange(c *gin.Context) {
	resp, err := s.reportSvc.ProjectsChange(c.Request.Context(), tenantID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) PaymentsChange(c *gin.Context) {
	resp, err := s.reportSvc.PaymentsChange(c.Request.Context(), tenantID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ExpensesChange(c *gin.Context) {
	resp, err := s.reportSvc.ExpensesChange(c.Request.Context(), tenantID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
