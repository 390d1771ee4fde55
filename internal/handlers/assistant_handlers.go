package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paylens/paylens-api/internal/auth"
	"github.com/paylens/paylens-api/internal/services"
)

// AssistantHandler turns natural-language questions into chart streams
type AssistantHandler struct {
	assistantService *services.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler instance
func NewAssistantHandler(assistantService *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// AskChartRequest represents the request body for the assistant endpoint
type AskChartRequest struct {
	Question string `json:"question" binding:"required"`
}

// AskChart translates a question into a chart request and streams the
// generation states as server-sent events. Translation failures arrive
// on the stream as a terminal error state.
func (h *AssistantHandler) AskChart(c *gin.Context) {
	var req AskChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token := auth.TokenFromContext(c)
	states := h.assistantService.ChartFromQuestion(c.Request.Context(), req.Question, token)
	streamStates(c, states)
}
