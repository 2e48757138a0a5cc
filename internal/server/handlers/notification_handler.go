package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/service/reporting"
	"github.com/mamadbah2/cropbudget/pkg/clients/whatsapp"
)

// NotificationHandler renders operator reports and sends them out.
type NotificationHandler struct {
	reports  *reporting.Service
	notifier whatsapp.Notifier
	logger   *zap.Logger
}

// NewNotificationHandler constructs the handler. A nil notifier makes Send
// answer 503.
func NewNotificationHandler(reports *reporting.Service, notifier whatsapp.Notifier, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{reports: reports, notifier: notifier, logger: logger}
}

// Report returns the weekly report text for a season.
func (h *NotificationHandler) Report(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	text, err := h.reports.WeeklyReport(c.Request.Context(), ownerOf(c), year)
	if err != nil {
		writeError(c, h.logger, "failed to build report", err)
		return
	}
	c.String(http.StatusOK, text)
}

// Send pushes a notification to the operator.
func (h *NotificationHandler) Send(c *gin.Context) {
	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notifications are not configured"})
		return
	}

	var req models.Notification
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid notification payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.notifier.Notify(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("failed sending notification", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"messageId": id})
}
