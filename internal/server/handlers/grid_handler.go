package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/service/grid"
	"github.com/mamadbah2/cropbudget/internal/service/season"
)

// GridHandler drives keyboard entry over a season's ticket table.
type GridHandler struct {
	seasons *season.Manager
	grids   *grid.Registry
	logger  *zap.Logger
}

// NewGridHandler constructs the grid HTTP adapter.
func NewGridHandler(seasons *season.Manager, grids *grid.Registry, logger *zap.Logger) *GridHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GridHandler{seasons: seasons, grids: grids, logger: logger}
}

// Open starts a grid over the season and returns its id and first state.
func (h *GridHandler) Open(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	s, err := h.seasons.Open(c.Request.Context(), ownerOf(c), year)
	if err != nil {
		writeError(c, h.logger, "failed to open season", err)
		return
	}
	id, g := h.grids.Open(ownerOf(c), year, s)
	c.JSON(http.StatusCreated, gin.H{"id": id, "state": g.State()})
}

// State returns the grid view.
func (h *GridHandler) State(c *gin.Context) {
	g, ok := h.grid(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g.State())
}

// Close discards the grid.
func (h *GridHandler) Close(c *gin.Context) {
	if !h.grids.Close(ownerOf(c), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": grid.ErrGridNotFound.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type focusRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// Focus moves focus to a cell, or clears it when row or col is null.
func (h *GridHandler) Focus(c *gin.Context) {
	g, ok := h.grid(c)
	if !ok {
		return
	}
	var req focusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Row == nil || req.Col == nil {
		g.Blur()
	} else {
		g.FocusAt(*req.Row, *req.Col)
	}
	c.JSON(http.StatusOK, g.State())
}

type keyRequest struct {
	Key   grid.Key `json:"key" binding:"required"`
	Shift bool     `json:"shift"`
}

// Key applies Tab, Shift+Tab or Enter.
func (h *GridHandler) Key(c *gin.Context) {
	g, ok := h.grid(c)
	if !ok {
		return
	}
	var req keyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	g.Press(req.Key, req.Shift)
	c.JSON(http.StatusOK, g.State())
}

type gridEditRequest struct {
	Row   *int   `json:"row"`
	Col   *int   `json:"col"`
	Value string `json:"value"`
}

// Edit writes into the focused cell, or into row/col when both are given.
func (h *GridHandler) Edit(c *gin.Context) {
	g, ok := h.grid(c)
	if !ok {
		return
	}
	var req gridEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var edited bool
	if req.Row != nil && req.Col != nil {
		edited = g.EditAt(*req.Row, *req.Col, req.Value)
	} else {
		edited = g.Edit(req.Value)
	}
	if !edited {
		c.JSON(http.StatusConflict, gin.H{"error": "no editable cell at focus"})
		return
	}
	c.JSON(http.StatusOK, g.State())
}

// AddRow appends a ticket and focuses its first column.
func (h *GridHandler) AddRow(c *gin.Context) {
	g, ok := h.grid(c)
	if !ok {
		return
	}
	g.AddRow()
	c.JSON(http.StatusOK, g.State())
}

type sortRequest struct {
	Column models.TicketField `json:"column"`
}

// Sort toggles the sort column; an empty column clears sorting.
func (h *GridHandler) Sort(c *gin.Context) {
	g, ok := h.grid(c)
	if !ok {
		return
	}
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Column == "" {
		g.ClearSort()
	} else if !g.Sort(req.Column) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort column"})
		return
	}
	c.JSON(http.StatusOK, g.State())
}

type filterRequest struct {
	Crop string `json:"crop"`
}

// Filter narrows the view to one crop tag; empty or "all" shows every row.
func (h *GridHandler) Filter(c *gin.Context) {
	g, ok := h.grid(c)
	if !ok {
		return
	}
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	g.Filter(req.Crop)
	c.JSON(http.StatusOK, g.State())
}

func (h *GridHandler) grid(c *gin.Context) (*grid.Grid, bool) {
	g, err := h.grids.Get(ownerOf(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "failed to load grid", err)
		return nil, false
	}
	return g, true
}
