package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/paylens/paylens-api/internal/client/payrail"
	"github.com/paylens/paylens-api/internal/mocks"
	"github.com/paylens/paylens-api/internal/services"
)

func setupAssistantRouter(assistant *services.AssistantService) *gin.Engine {
	handler := NewAssistantHandler(assistant)

	router := gin.New()
	router.Use(withTestToken)
	router.POST("/assistant/chart", handler.AskChart)
	return router
}

func TestAskChart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": `{"resourceType": "payout", "aggregationType": "by-status"}`},
				}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer gemini.Close()

	fetcher := mocks.NewMockRecordFetcher(ctrl)
	fetcher.EXPECT().
		ListRecords(gomock.Any(), payrail.EndpointPayouts, testToken, gomock.Any()).
		Return([]payrail.Record{
			{ID: 1, Amount: 250, Currency: "USD", Status: "pending", CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
		}, nil).
		Times(1)

	chartService := services.NewChartService(nil, fetcher, nil)
	assistant := services.NewAssistantService("test-key", "", chartService, nil,
		services.WithEndpoint(gemini.URL))

	router := setupAssistantRouter(assistant)

	w := newSSERecorder()
	req := httptest.NewRequest(http.MethodPost, "/assistant/chart", jsonBody(t, gin.H{
		"question": "how are my payouts doing by status",
	}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, w.Body.String(), `"state":"success"`)
}

func TestAskChart_MissingQuestion(t *testing.T) {
	router := setupAssistantRouter(services.NewAssistantService("", "", nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assistant/chart", jsonBody(t, gin.H{}))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskChart_TranslationFailureStreamsErrorState(t *testing.T) {
	// No API key configured, so translation fails before any fetch.
	router := setupAssistantRouter(services.NewAssistantService("", "", nil, nil))

	w := newSSERecorder()
	req := httptest.NewRequest(http.MethodPost, "/assistant/chart", jsonBody(t, gin.H{
		"question": "daily refund volume",
	}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"error"`)
	assert.Contains(t, w.Body.String(), "missing Gemini API key")
}
