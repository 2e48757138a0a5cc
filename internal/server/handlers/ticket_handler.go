package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/service/export"
	"github.com/mamadbah2/cropbudget/internal/service/ingest"
	"github.com/mamadbah2/cropbudget/internal/service/reporting"
	"github.com/mamadbah2/cropbudget/internal/service/tickets"
)

const maxUploadBytes = 10 << 20

// TicketHandler serves grain ticket entry, export and CSV import.
type TicketHandler struct {
	svc    *tickets.Service
	logger *zap.Logger
}

// NewTicketHandler constructs the ticket HTTP adapter.
func NewTicketHandler(svc *tickets.Service, logger *zap.Logger) *TicketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketHandler{svc: svc, logger: logger}
}

// List returns the season's tickets with their totals, optionally for one crop.
func (h *TicketHandler) List(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), ownerOf(c), year)
	if err != nil {
		writeError(c, h.logger, "failed to list tickets", err)
		return
	}

	crop := c.DefaultQuery("crop", "all")
	rows := make([]models.GrainTicket, 0, len(list))
	for _, t := range list {
		if crop == "all" || t.Crop == crop {
			rows = append(rows, t)
		}
	}
	doc := &models.SeasonDocument{GrainTickets: list}
	c.JSON(http.StatusOK, gin.H{
		"tickets": rows,
		"summary": reporting.SummarizeTickets(doc, crop),
	})
}

// QuickAdd appends one ticket from form fields and returns the next form.
func (h *TicketHandler) QuickAdd(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	var form tickets.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ticket, next, err := h.svc.QuickAdd(c.Request.Context(), ownerOf(c), year, form)
	if err != nil {
		writeError(c, h.logger, "failed to add ticket", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket, "next": next})
}

type editTicketRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// Edit sets one field of a ticket.
func (h *TicketHandler) Edit(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	var req editTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ticket, err := h.svc.Edit(c.Request.Context(), ownerOf(c), year, c.Param("id"), req.Field, req.Value)
	if err != nil {
		writeError(c, h.logger, "failed to edit ticket", err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Delete removes a ticket.
func (h *TicketHandler) Delete(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ownerOf(c), year, c.Param("id")); err != nil {
		writeError(c, h.logger, "failed to delete ticket", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export writes the tickets as an xlsx download.
func (h *TicketHandler) Export(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), ownerOf(c), year)
	if err != nil {
		writeError(c, h.logger, "failed to export tickets", err)
		return
	}

	var buf bytes.Buffer
	if err := export.Tickets(&buf, list, c.DefaultQuery("crop", "all")); err != nil {
		writeError(c, h.logger, "failed to export tickets", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="tickets-%d.xlsx"`, year))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// ImportView is the state of an import session shown to the operator.
type ImportView struct {
	ID      string              `json:"id"`
	Year    int                 `json:"year"`
	Headers []string            `json:"headers"`
	Rows    int                 `json:"rows"`
	Mapping ingest.Mapping      `json:"mapping"`
	Preview []ingest.PreviewRow `json:"preview"`
}

func importView(s *ingest.Session) ImportView {
	return ImportView{
		ID:      s.ID,
		Year:    s.Year,
		Headers: s.Headers,
		Rows:    len(s.Rows),
		Mapping: s.Mapping(),
		Preview: s.Preview(),
	}
}

// StartImport accepts a CSV as multipart field "file" or as the raw body.
func (h *TicketHandler) StartImport(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	text, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.svc.StartImport(ownerOf(c), year, text)
	if err != nil {
		writeError(c, h.logger, "failed to start import", err)
		return
	}
	c.JSON(http.StatusCreated, importView(s))
}

// GetImport returns the mapping and preview of an import.
func (h *TicketHandler) GetImport(c *gin.Context) {
	s, err := h.svc.Import(ownerOf(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "failed to load import", err)
		return
	}
	c.JSON(http.StatusOK, importView(s))
}

type mappingRequest struct {
	Field  models.TicketField `json:"field" binding:"required"`
	Column *int               `json:"column"`
}

// UpdateMapping assigns a column to a field, or skips the field for a null column.
func (h *TicketHandler) UpdateMapping(c *gin.Context) {
	var req mappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s, err := h.svc.Import(ownerOf(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "failed to load import", err)
		return
	}

	if req.Column == nil {
		err = s.Skip(req.Field)
	} else {
		err = s.Assign(req.Field, *req.Column)
	}
	if err != nil {
		writeError(c, h.logger, "failed to update mapping", err)
		return
	}
	c.JSON(http.StatusOK, importView(s))
}

// CommitImport appends the built tickets to the season.
func (h *TicketHandler) CommitImport(c *gin.Context) {
	built, err := h.svc.CommitImport(c.Request.Context(), ownerOf(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "failed to commit import", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(built), "tickets": built})
}

// DiscardImport cancels an import.
func (h *TicketHandler) DiscardImport(c *gin.Context) {
	if !h.svc.DiscardImport(ownerOf(c), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": ingest.ErrSessionNotFound.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func readUpload(c *gin.Context) (string, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return "", fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(data), nil
}
