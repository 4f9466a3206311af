package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identitydomain "github.com/ledgique/ledgique/internal/identity/domain"
)

func (s *Server) GetMe(c *gin.Context) {
	resp, err := s.identitySvc.GetAccount(c.Request.Context(), tenantID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type updateAccountRequest struct {
	Name     *string `json:"name"`
	Currency *string `json:"currency"`
}

func (s *Server) UpdateMe(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.identitySvc.UpdateAccount(c.Request.Context(), tenantID(c), identitydomain.UpdateAccountRequest{
		Name:     req.Name,
		Currency: req.Currency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
