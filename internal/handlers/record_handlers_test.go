package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/paylens/paylens-api/internal/client/payrail"
	"github.com/paylens/paylens-api/internal/mocks"
)

func setupRecordRouter(fetcher *mocks.MockRecordFetcher) *gin.Engine {
	handler := NewRecordHandler(fetcher)

	router := gin.New()
	router.Use(withTestToken)
	router.GET("/records/:resource", handler.ListRecords)
	return router
}

func TestListRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecordFetcher(ctrl)
	fetcher.EXPECT().
		ListRecords(gomock.Any(), payrail.EndpointRefunds, testToken, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, params url.Values) ([]payrail.Record, error) {
			assert.Equal(t, "25", params.Get("perPage"))
			assert.Equal(t, "2", params.Get("page"))
			assert.Equal(t, "false", params.Get("use_cursor"))
			assert.Equal(t, "processed", params.Get("status"))
			return []payrail.Record{
				{ID: 7, Amount: 400, Currency: "USD", Status: "processed", CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), Type: "partial"},
			}, nil
		}).
		Times(1)

	router := setupRecordRouter(fetcher)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/refund?page=2&perPage=25&status=processed", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":2`)
	assert.Contains(t, w.Body.String(), `"status":"processed"`)
}

func TestListRecords_UnknownResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := setupRecordRouter(mocks.NewMockRecordFetcher(ctrl))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/invoices", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown resource type")
}

func TestListRecords_InvalidPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := setupRecordRouter(mocks.NewMockRecordFetcher(ctrl))

	for _, target := range []string{
		"/records/transaction?page=0",
		"/records/transaction?page=abc",
		"/records/transaction?perPage=500",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestListRecords_UpstreamAuthError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecordFetcher(ctrl)
	fetcher.EXPECT().
		ListRecords(gomock.Any(), payrail.EndpointTransactions, testToken, gomock.Any()).
		Return(nil, &payrail.APIError{StatusCode: http.StatusUnauthorized, Message: "Token expired"}).
		Times(1)

	router := setupRecordRouter(fetcher)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/transaction", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListRecords_UpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecordFetcher(ctrl)
	fetcher.EXPECT().
		ListRecords(gomock.Any(), payrail.EndpointDisputes, testToken, gomock.Any()).
		Return(nil, &payrail.APIError{StatusCode: http.StatusBadGateway, Message: "upstream down"}).
		Times(1)

	router := setupRecordRouter(fetcher)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/dispute", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
