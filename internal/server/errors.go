package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	expensedomain "github.com/ledgique/ledgique/internal/expense/domain"
	identitydomain "github.com/ledgique/ledgique/internal/identity/domain"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	notedomain "github.com/ledgique/ledgique/internal/note/domain"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	retainerdomain "github.com/ledgique/ledgique/internal/retainer/domain"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
)

// notFoundErrors map to 404 with the fixed "Not found" body.
var notFoundErrors = []error{
	clientdomain.ErrNotFound,
	projectdomain.ErrNotFound,
	paymentdomain.ErrNotFound,
	invoicedomain.ErrNotFound,
	expensedomain.ErrNotFound,
	retainerdomain.ErrNotFound,
	notedomain.ErrNotFound,
	identitydomain.ErrAccountNotFound,
	gorm.ErrRecordNotFound,
}

// validationErrors map to 400 with the sentinel's message as the reason.
var validationErrors = []error{
	ErrInvalidRequest,
	clientdomain.ErrInvalidName,
	clientdomain.ErrInvalidStatus,
	clientdomain.ErrInvalidID,
	clientdomain.ErrInvalidSource,
	clientdomain.ErrSourceExists,
	clientdomain.ErrHasProjects,
	projectdomain.ErrInvalidName,
	projectdomain.ErrInvalidClient,
	projectdomain.ErrInvalidStatus,
	projectdomain.ErrInvalidPriority,
	projectdomain.ErrInvalidID,
	paymentdomain.ErrInvalidClient,
	paymentdomain.ErrInvalidProject,
	paymentdomain.ErrInvalidAmount,
	paymentdomain.ErrInvalidMethod,
	paymentdomain.ErrInvalidStatus,
	paymentdomain.ErrInvalidType,
	paymentdomain.ErrInvalidID,
	invoicedomain.ErrInvalidClient,
	invoicedomain.ErrInvalidProject,
	invoicedomain.ErrInvalidStatus,
	invoicedomain.ErrInvalidItems,
	invoicedomain.ErrInvalidTaxRate,
	invoicedomain.ErrInvalidDiscount,
	invoicedomain.ErrInvalidID,
	invoicedomain.ErrAlreadyPaid,
	invoicedomain.ErrNotEditable,
	expensedomain.ErrInvalidDescription,
	expensedomain.ErrInvalidAmount,
	expensedomain.ErrInvalidCategory,
	expensedomain.ErrInvalidProject,
	expensedomain.ErrInvalidID,
	retainerdomain.ErrInvalidClient,
	retainerdomain.ErrInvalidName,
	retainerdomain.ErrInvalidAmount,
	retainerdomain.ErrInvalidStatus,
	retainerdomain.ErrInvalidID,
	retainerdomain.ErrNotActive,
	retainerdomain.ErrInsufficientFunds,
	notedomain.ErrInvalidTitle,
	notedomain.ErrInvalidType,
	notedomain.ErrInvalidPriority,
	notedomain.ErrInvalidStatus,
	notedomain.ErrInvalidClient,
	notedomain.ErrInvalidProject,
	notedomain.ErrProjectMismatch,
	notedomain.ErrInvalidID,
	identitydomain.ErrInvalidCurrency,
	identitydomain.ErrInvalidEvent,
}

// ErrorHandlingMiddleware renders the last handler error after the
// chain has run. Handlers push errors with AbortWithError and never
// write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{"error": message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "Internal server error"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, identitydomain.ErrInvalidToken):
		return http.StatusUnauthorized, "Unauthorized"
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound, "Not found"
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, err.Error()
		}
	}

	// Cause stays server-side; the request logger records it.
	return http.StatusInternalServerError, "Internal server error"
}
