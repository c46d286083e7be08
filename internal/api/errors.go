package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
)

// fail maps an engine error onto an HTTP status and a descriptive
// message. Business outcomes keep their message; anything unexpected is
// reported as a generic 500.
func fail(c *gin.Context, err error) {
	var dup *domain.DuplicateFieldError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": dup.Error(), "field": dup.Field})
	case errors.Is(err, domain.ErrWalletExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientBitcoin),
		errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrMismatchedParties),
		errors.Is(err, domain.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// currentUserID pulls the authenticated user id set by the JWT
// middleware. It reports false (and responds 401) when missing.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := userID.(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}
