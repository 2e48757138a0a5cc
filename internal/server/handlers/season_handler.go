package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/service/allocation"
	"github.com/mamadbah2/cropbudget/internal/service/reporting"
	"github.com/mamadbah2/cropbudget/internal/service/season"
)

// SeasonHandler serves season documents, their budget and their rollups.
type SeasonHandler struct {
	seasons *season.Manager
	reports *reporting.Service
	logger  *zap.Logger
	now     func() time.Time
}

// NewSeasonHandler constructs the season HTTP adapter.
func NewSeasonHandler(seasons *season.Manager, reports *reporting.Service, logger *zap.Logger) *SeasonHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeasonHandler{seasons: seasons, reports: reports, logger: logger, now: time.Now}
}

// CropBudget is the cost breakdown of one crop.
type CropBudget struct {
	CropID        string                `json:"cropId"`
	Name          string                `json:"name"`
	Acres         float64               `json:"acres"`
	LineItems     []allocation.LineItem `json:"lineItems"`
	CostPerAcre   float64               `json:"costPerAcre"`
	IncomePerAcre float64               `json:"incomePerAcre"`
	ReturnPerAcre float64               `json:"returnPerAcre"`
}

// Years lists the owner's seasons, newest first.
func (h *SeasonHandler) Years(c *gin.Context) {
	years, err := h.seasons.Years(c.Request.Context(), ownerOf(c))
	if err != nil {
		writeError(c, h.logger, "failed to list seasons", err)
		return
	}
	if years == nil {
		years = []int{}
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}

// Document returns the season document, starting from defaults for a new year.
func (h *SeasonHandler) Document(c *gin.Context) {
	s, ok := h.open(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Current())
}

// Replace swaps the whole document. Orphaned crop references are dropped
// before validation.
func (h *SeasonHandler) Replace(c *gin.Context) {
	var incoming models.SeasonDocument
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.edit(c, "failed to replace season", http.StatusOK, func(doc *models.SeasonDocument) (any, error) {
		incoming.Year = doc.Year
		incoming.Repair()
		if err := incoming.Validate(); err != nil {
			return nil, err
		}
		*doc = incoming
		return doc, nil
	})
}

// Status reports whether the season's latest edits are stored.
func (h *SeasonHandler) Status(c *gin.Context) {
	s, ok := h.open(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Status())
}

// Save stores the season now.
func (h *SeasonHandler) Save(c *gin.Context) {
	s, ok := h.open(c)
	if !ok {
		return
	}
	if err := s.Flush(c.Request.Context()); err != nil {
		h.logger.Error("manual save failed", zap.Error(err), zap.Int("year", s.Year()))
		c.JSON(http.StatusBadGateway, s.Status())
		return
	}
	c.JSON(http.StatusOK, s.Status())
}

type copyRequest struct {
	To int `json:"to" binding:"required"`
}

// Copy starts a new year from this season's budget.
func (h *SeasonHandler) Copy(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	var req copyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.To <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target year is required"})
		return
	}

	dst, err := h.seasons.CopyYear(c.Request.Context(), ownerOf(c), year, req.To)
	if err != nil {
		writeError(c, h.logger, "failed to copy season", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"year": dst.Year(), "status": dst.Status()})
}

// Budget returns the per-crop cost breakdown.
func (h *SeasonHandler) Budget(c *gin.Context) {
	s, ok := h.open(c)
	if !ok {
		return
	}
	doc := s.Current()

	out := make([]CropBudget, 0, len(doc.Crops))
	for i := range doc.Crops {
		crop := &doc.Crops[i]
		cost := allocation.CropCostPerAcre(doc, crop.ID)
		income := allocation.CropIncomePerAcre(doc, crop)
		out = append(out, CropBudget{
			CropID:        crop.ID,
			Name:          crop.Name,
			Acres:         crop.Acres,
			LineItems:     allocation.CostLineItems(doc, crop.ID),
			CostPerAcre:   cost,
			IncomePerAcre: income,
			ReturnPerAcre: income - cost,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"year":       doc.Year,
		"totalAcres": allocation.TotalPlantedAcres(doc),
		"crops":      out,
	})
}

// Summary returns the dashboard, marketing, ticket and rent rollups.
func (h *SeasonHandler) Summary(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	sum, err := h.reports.Summarize(c.Request.Context(), ownerOf(c), year)
	if err != nil {
		writeError(c, h.logger, "failed to summarize season", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type cropRequest struct {
	Name string `json:"name"`
}

// AddCrop appends a blank crop.
func (h *SeasonHandler) AddCrop(c *gin.Context) {
	var req cropRequest
	_ = c.ShouldBindJSON(&req)
	h.edit(c, "failed to add crop", http.StatusCreated, func(doc *models.SeasonDocument) (any, error) {
		return doc.AddCrop(req.Name, h.now()), nil
	})
}

// RemoveCrop deletes a crop and its references.
func (h *SeasonHandler) RemoveCrop(c *gin.Context) {
	id := c.Param("id")
	h.edit(c, "failed to remove crop", http.StatusNoContent, func(doc *models.SeasonDocument) (any, error) {
		if !doc.RemoveCrop(id) {
			return nil, errCropNotFound
		}
		return nil, nil
	})
}

// AddContract appends a contract to a marketing group.
func (h *SeasonHandler) AddContract(c *gin.Context) {
	group := c.Param("group")
	var req models.Contract
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.edit(c, "failed to add contract", http.StatusCreated, func(doc *models.SeasonDocument) (any, error) {
		if doc.FindGroup(group) == nil {
			return nil, errGroupNotFound
		}
		return doc.AddContract(group, req), nil
	})
}

// RemoveContract deletes a contract from its group.
func (h *SeasonHandler) RemoveContract(c *gin.Context) {
	group := c.Param("group")
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	h.edit(c, "failed to remove contract", http.StatusNoContent, func(doc *models.SeasonDocument) (any, error) {
		if !doc.RemoveContract(group, id) {
			return nil, errContractNotFound
		}
		return nil, nil
	})
}

// AddOverhead appends a whole-farm overhead item.
func (h *SeasonHandler) AddOverhead(c *gin.Context) {
	var req models.OverheadItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.edit(c, "failed to add overhead", http.StatusCreated, func(doc *models.SeasonDocument) (any, error) {
		return doc.AddOverhead(req)
	})
}

// RemoveOverhead deletes an overhead item.
func (h *SeasonHandler) RemoveOverhead(c *gin.Context) {
	id := c.Param("id")
	h.edit(c, "failed to remove overhead", http.StatusNoContent, func(doc *models.SeasonDocument) (any, error) {
		if !doc.RemoveOverhead(id) {
			return nil, errOverheadNotFound
		}
		return nil, nil
	})
}

// AddCashRent appends a lease line.
func (h *SeasonHandler) AddCashRent(c *gin.Context) {
	var req models.CashRent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.edit(c, "failed to add cash rent", http.StatusCreated, func(doc *models.SeasonDocument) (any, error) {
		return doc.AddCashRent(req), nil
	})
}

// AddCapitalItem appends a capital plan line.
func (h *SeasonHandler) AddCapitalItem(c *gin.Context) {
	var req models.CapitalItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.edit(c, "failed to add capital item", http.StatusCreated, func(doc *models.SeasonDocument) (any, error) {
		return doc.AddCapitalItem(req), nil
	})
}

type planRequest struct {
	Year int `json:"year"`
}

// PlanWish moves a wish list entry onto the capital plan.
func (h *SeasonHandler) PlanWish(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req planRequest
	_ = c.ShouldBindJSON(&req)
	h.edit(c, "failed to plan wish list item", http.StatusCreated, func(doc *models.SeasonDocument) (any, error) {
		year := req.Year
		if year == 0 {
			year = doc.Year
		}
		item, ok := doc.MoveWishToPlan(id, year)
		if !ok {
			return nil, errWishNotFound
		}
		return item, nil
	})
}

func (h *SeasonHandler) open(c *gin.Context) (*season.Season, bool) {
	year, ok := yearParam(c)
	if !ok {
		return nil, false
	}
	s, err := h.seasons.Open(c.Request.Context(), ownerOf(c), year)
	if err != nil {
		writeError(c, h.logger, "failed to open season", err)
		return nil, false
	}
	return s, true
}

// edit runs fn through the season's update gate and writes its result.
func (h *SeasonHandler) edit(c *gin.Context, msg string, status int, fn func(doc *models.SeasonDocument) (any, error)) {
	s, ok := h.open(c)
	if !ok {
		return
	}

	var result any
	_, err := s.Update(func(doc *models.SeasonDocument) error {
		var err error
		result, err = fn(doc)
		return err
	})
	if err != nil {
		writeError(c, h.logger, msg, err)
		return
	}

	if status == http.StatusNoContent || result == nil {
		c.Status(status)
		return
	}
	c.JSON(status, result)
}
