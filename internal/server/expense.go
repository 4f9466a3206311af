package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	expensedomain "github.com/ledgique/ledgique/internal/expense/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type createExpenseRequest struct {
	ClientID    string  `json:"client_id"`
	ProjectID   string  `json:"project_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	HasReceipt  bool    `json:"has_receipt"`
}

func (s *Server) CreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	clientID, err := parseOptionalSnowflakeID(req.ClientID)
	if err != nil {
		AbortWithError(c, expensedomain.ErrInvalidClient)
		return
	}
	projectID, err := parseOptionalSnowflakeID(req.ProjectID)
	if err != nil {
		AbortWithError(c, expensedomain.ErrInvalidProject)
		return
	}
	date, err := parseOptionalTime(req.Date, false)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.expenseSvc.Create(c.Request.Context(), tenantID(c), expensedomain.CreateExpenseRequest{
		ClientID:    clientID,
		ProjectID:   projectID,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Category:    expensedomain.ExpenseCategory(req.Category),
		Date:        date,
		HasReceipt:  req.HasReceipt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListExpenses(c *gin.Context) {
	var query struct {
		pagination.Params
		ClientID  string `form:"client_id"`
		ProjectID string `form:"project_id"`
		Category  string `form:"category"`
		From      string `form:"from"`
		To        string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	clientID, err := parseOptionalSnowflakeID(query.ClientID)
	if err != nil {
		AbortWithError(c, expensedomain.ErrInvalidClient)
		return
	}
	projectID, err := parseOptionalSnowflakeID(query.ProjectID)
	if err != nil {
		AbortWithError(c, expensedomain.ErrInvalidProject)
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

	resp, err := s.expenseSvc.List(c.Request.Context(), tenantID(c), expensedomain.ListExpenseRequest{
		Params:    query.Params,
		ClientID:  clientID,
		ProjectID: projectID,
		Category:  expensedomain.ExpenseCategory(strings.TrimSpace(query.Category)),
		From:      from,
		To:        to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetExpense(c *gin.Context) {
	resp, err := s.expenseSvc.GetByID(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateExpenseRequest struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
}

func (s *Server) UpdateExpense(c *gin.Context) {
	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := expensedomain.UpdateExpenseRequest{
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.Category != nil {
		category := expensedomain.ExpenseCategory(*req.Category)
		update.Category = &category
	}
	if req.Date != nil {
		date, err := parseOptionalTime(*req.Date, false)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		update.Date = date
	}

	resp, err := s.expenseSvc.Update(c.Request.Context(), tenantID(c), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteExpense(c *gin.Context) {
	if err := s.expenseSvc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
