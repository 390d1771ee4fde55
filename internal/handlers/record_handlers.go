package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/paylens/paylens-api/internal/auth"
	"github.com/paylens/paylens-api/internal/charts"
	"github.com/paylens/paylens-api/internal/client/payrail"
)

// RecordHandler proxies raw record listings from the upstream payments
// API, for dashboard views that show rows rather than charts.
type RecordHandler struct {
	fetcher charts.RecordFetcher
}

// NewRecordHandler creates a new RecordHandler instance
func NewRecordHandler(fetcher charts.RecordFetcher) *RecordHandler {
	return &RecordHandler{fetcher: fetcher}
}

// ListRecordsResponse represents the response for record list operations
type ListRecordsResponse struct {
	Object string           `json:"object"`
	Data   []payrail.Record `json:"data"`
	Page   int              `json:"page"`
}

// ListRecords returns one page of records for a resource, passing the
// caller's filters through to the upstream API.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	endpoint, ok := payrail.ResourceEndpoint(c.Param("resource"))
	if !ok {
		sendError(c, http.StatusBadRequest, "Unknown resource type", nil)
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		sendError(c, http.StatusBadRequest, "Invalid page parameter", err)
		return
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "50"))
	if err != nil || perPage < 1 || perPage > 100 {
		sendError(c, http.StatusBadRequest, "Invalid perPage parameter", err)
		return
	}

	params := url.Values{}
	params.Set("perPage", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("use_cursor", "false")
	for _, key := range []string{"status", "from", "to", "currency", "channel"} {
		if value := c.Query(key); value != "" {
			params.Set(key, value)
		}
	}

	token := auth.TokenFromContext(c)
	records, err := h.fetcher.ListRecords(c.Request.Context(), endpoint, token, params)
	if err != nil {
		var apiErr *payrail.APIError
		if errors.As(err, &apiErr) && apiErr.IsAuthError() {
			sendError(c, http.StatusUnauthorized, "Upstream rejected the session token", err)
			return
		}
		sendError(c, http.StatusBadGateway, "Failed to fetch records", err)
		return
	}

	sendSuccess(c, http.StatusOK, ListRecordsResponse{
		Object: "list",
		Data:   records,
		Page:   page,
	})
}
