package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository"
	"github.com/mamadbah2/cropbudget/internal/service/grid"
	"github.com/mamadbah2/cropbudget/internal/service/ingest"
	"github.com/mamadbah2/cropbudget/internal/service/season"
	"github.com/mamadbah2/cropbudget/internal/service/tickets"
)

// OwnerHeader carries the authenticated account id set by the gateway.
const OwnerHeader = "X-Owner-ID"

const ownerKey = "owner"

var (
	errCropNotFound     = errors.New("crop not found")
	errGroupNotFound    = errors.New("marketing group not found")
	errContractNotFound = errors.New("contract not found")
	errOverheadNotFound = errors.New("overhead item not found")
	errWishNotFound     = errors.New("wish list item not found")
	errInvalidYear      = errors.New("invalid year")
	errInvalidID        = errors.New("invalid id")
)

// RequireOwner rejects requests without an owner header.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader(OwnerHeader)
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + OwnerHeader + " header"})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

func ownerOf(c *gin.Context) string {
	return c.GetString(ownerKey)
}

func yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidYear.Error()})
		return 0, false
	}
	return year, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID.Error()})
		return 0, false
	}
	return v, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, ingest.ErrSessionNotFound),
		errors.Is(err, grid.ErrGridNotFound),
		errors.Is(err, tickets.ErrTicketNotFound),
		errors.Is(err, season.ErrNotOpen),
		errors.Is(err, errCropNotFound),
		errors.Is(err, errGroupNotFound),
		errors.Is(err, errContractNotFound),
		errors.Is(err, errOverheadNotFound),
		errors.Is(err, errWishNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingest.ErrNoDataRows),
		errors.Is(err, ingest.ErrUnknownField),
		errors.Is(err, ingest.ErrColumnOutOfRange),
		errors.Is(err, tickets.ErrInvalidField):
		return http.StatusBadRequest
	case errors.Is(err, season.ErrYearExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err), zap.String("owner", ownerOf(c)))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Debug(msg, zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}
