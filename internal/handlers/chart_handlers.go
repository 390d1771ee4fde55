package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/paylens/paylens-api/internal/auth"
	"github.com/paylens/paylens-api/internal/charts"
	"github.com/paylens/paylens-api/internal/db"
	"github.com/paylens/paylens-api/internal/services"
)

// ChartHandler handles chart generation and saved-chart operations
type ChartHandler struct {
	chartService *services.ChartService
}

// NewChartHandler creates a new ChartHandler instance
func NewChartHandler(chartService *services.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

// SavedChartResponse represents the standardized API response for saved charts
type SavedChartResponse struct {
	ID              string `json:"id"`
	Object          string `json:"object"`
	Name            string `json:"name"`
	ResourceType    string `json:"resource_type"`
	AggregationType string `json:"aggregation_type"`
	Status          string `json:"status,omitempty"`
	DateFrom        string `json:"date_from,omitempty"`
	DateTo          string `json:"date_to,omitempty"`
	Currency        string `json:"currency,omitempty"`
	Channel         string `json:"channel,omitempty"`
	CreatedAt       int64  `json:"created_at"`
	UpdatedAt       int64  `json:"updated_at"`
}

func toSavedChartResponse(saved db.SavedChart) SavedChartResponse {
	resp := SavedChartResponse{
		ID:              saved.ID.String(),
		Object:          "saved_chart",
		Name:            saved.Name,
		ResourceType:    saved.ResourceType,
		AggregationType: saved.AggregationType,
		Status:          saved.Status.String,
		DateFrom:        saved.DateFrom.String,
		DateTo:          saved.DateTo.String,
		Currency:        saved.Currency.String,
		Channel:         saved.Channel.String,
	}
	if saved.CreatedAt.Valid {
		resp.CreatedAt = saved.CreatedAt.Time.Unix()
	}
	if saved.UpdatedAt.Valid {
		resp.UpdatedAt = saved.UpdatedAt.Time.Unix()
	}
	return resp
}

// streamStates writes chart generation states to the response as
// server-sent events, one event per state, until the stream closes.
func streamStates(c *gin.Context, states <-chan charts.ChartGenerationState) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		state, ok := <-states
		if !ok {
			return false
		}
		c.SSEvent("state", state)
		return true
	})
}

// GenerateChart streams chart generation progress for the requested
// resource and aggregation as server-sent events.
func (h *ChartHandler) GenerateChart(c *gin.Context) {
	var req charts.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token := auth.TokenFromContext(c)
	states := h.chartService.GenerateChart(c.Request.Context(), req, token)
	streamStates(c, states)
}

// GenerateChartSync runs chart generation to completion and returns only
// the terminal state. Intended for clients that cannot consume SSE.
func (h *ChartHandler) GenerateChartSync(c *gin.Context) {
	var req charts.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token := auth.TokenFromContext(c)
	states := h.chartService.GenerateChart(c.Request.Context(), req, token)

	var terminal charts.ChartGenerationState
	for state := range states {
		terminal = state
	}

	status := http.StatusOK
	if terminal.State == charts.StateError {
		status = http.StatusUnprocessableEntity
	}
	sendSuccess(c, status, terminal)
}

// SaveChartRequest represents the request body for saving a chart
type SaveChartRequest struct {
	Name            string `json:"name" binding:"required"`
	ResourceType    string `json:"resourceType" binding:"required"`
	AggregationType string `json:"aggregationType" binding:"required"`
	Status          string `json:"status"`
	From            string `json:"from"`
	To              string `json:"to"`
	Currency        string `json:"currency"`
	Channel         string `json:"channel"`
}

// SaveChart persists a chart configuration for later regeneration.
func (h *ChartHandler) SaveChart(c *gin.Context) {
	var req SaveChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	saved, err := h.chartService.SaveChart(c.Request.Context(), services.SaveChartParams{
		Name: req.Name,
		Request: charts.ChartRequest{
			ResourceType:    charts.ResourceType(req.ResourceType),
			AggregationType: charts.AggregationType(req.AggregationType),
			Status:          req.Status,
			From:            req.From,
			To:              req.To,
			Currency:        req.Currency,
			Channel:         req.Channel,
		},
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidChartConfig) {
			sendError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		handleStoreError(c, err, "Saved chart not found")
		return
	}

	sendSuccess(c, http.StatusCreated, toSavedChartResponse(saved))
}

// ListSavedCharts returns saved chart configurations, newest first.
func (h *ChartHandler) ListSavedCharts(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 32)
	if err != nil || limit < 1 || limit > 100 {
		sendError(c, http.StatusBadRequest, "Invalid limit parameter", err)
		return
	}
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 32)
	if err != nil || offset < 0 {
		sendError(c, http.StatusBadRequest, "Invalid offset parameter", err)
		return
	}

	saved, err := h.chartService.ListSavedCharts(c.Request.Context(), int32(limit), int32(offset))
	if err != nil {
		handleStoreError(c, err, "Saved chart not found")
		return
	}

	items := make([]SavedChartResponse, 0, len(saved))
	for _, chart := range saved {
		items = append(items, toSavedChartResponse(chart))
	}
	sendList(c, items)
}

// GetSavedChart returns one saved chart configuration.
func (h *ChartHandler) GetSavedChart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("chart_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid chart ID format", err)
		return
	}

	saved, err := h.chartService.GetSavedChart(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err, "Saved chart not found")
		return
	}

	sendSuccess(c, http.StatusOK, toSavedChartResponse(saved))
}

// DeleteSavedChart removes a saved chart configuration.
func (h *ChartHandler) DeleteSavedChart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("chart_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid chart ID format", err)
		return
	}

	if err := h.chartService.DeleteSavedChart(c.Request.Context(), id); err != nil {
		handleStoreError(c, err, "Saved chart not found")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Saved chart deleted"})
}

// RegenerateSavedChart re-runs generation for a saved chart and streams
// progress as server-sent events.
func (h *ChartHandler) RegenerateSavedChart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("chart_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid chart ID format", err)
		return
	}

	token := auth.TokenFromContext(c)
	states, err := h.chartService.RegenerateSavedChart(c.Request.Context(), id, token)
	if err != nil {
		handleStoreError(c, err, "Saved chart not found")
		return
	}

	streamStates(c, states)
}
