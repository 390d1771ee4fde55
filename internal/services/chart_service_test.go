package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/paylens/paylens-api/internal/charts"
	"github.com/paylens/paylens-api/internal/client/payrail"
	"github.com/paylens/paylens-api/internal/db"
	"github.com/paylens/paylens-api/internal/mocks"
	"github.com/paylens/paylens-api/internal/services"
)

const testToken = "user-jwt-token"

func optText(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}

func TestChartService_SaveChart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		params      services.SaveChartParams
		setupMock   func(store *mocks.MockChartStore)
		expectError string
	}{
		{
			name: "valid configuration persisted",
			params: services.SaveChartParams{
				Name: "Daily volume",
				Request: charts.ChartRequest{
					ResourceType:    charts.ResourceTransaction,
					AggregationType: charts.AggregateByDay,
					Currency:        "USD",
				},
			},
			setupMock: func(store *mocks.MockChartStore) {
				store.EXPECT().
					CreateSavedChart(gomock.Any(), db.CreateSavedChartParams{
						Name:            "Daily volume",
						ResourceType:    "transaction",
						AggregationType: "by-day",
						Currency:        "USD",
					}).
					Return(db.SavedChart{
						ID:              uuid.New(),
						Name:            "Daily volume",
						ResourceType:    "transaction",
						AggregationType: "by-day",
						Currency:        optText("USD"),
					}, nil).
					Times(1)
			},
		},
		{
			name: "invalid configuration rejected before the store",
			params: services.SaveChartParams{
				Name: "Refunds by channel",
				Request: charts.ChartRequest{
					ResourceType:    charts.ResourceRefund,
					AggregationType: charts.AggregateByChannel,
				},
			},
			setupMock:   func(store *mocks.MockChartStore) {},
			expectError: "invalid chart configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockChartStore(ctrl)
			tt.setupMock(store)

			fetcher := mocks.NewMockRecordFetcher(ctrl)
			service := services.NewChartService(store, fetcher, nil)

			saved, err := service.SaveChart(context.Background(), tt.params)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.Name, saved.Name)
		})
	}
}

func TestChartService_RegenerateSavedChart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chartID := uuid.New()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	store := mocks.NewMockChartStore(ctrl)
	store.EXPECT().
		GetSavedChart(gomock.Any(), chartID).
		Return(db.SavedChart{
			ID:              chartID,
			Name:            "Disputes by status",
			ResourceType:    "dispute",
			AggregationType: "by-status",
		}, nil).
		Times(1)

	fetcher := mocks.NewMockRecordFetcher(ctrl)
	fetcher.EXPECT().
		ListRecords(gomock.Any(), payrail.EndpointDisputes, testToken, gomock.Any()).
		Return([]payrail.Record{
			{ID: 1, Amount: 900, Currency: "USD", Status: "resolved", CreatedAt: created},
		}, nil).
		Times(1)

	service := services.NewChartService(store, fetcher, nil)

	stream, err := service.RegenerateSavedChart(context.Background(), chartID, testToken)
	require.NoError(t, err)

	var terminal charts.ChartGenerationState
	for state := range stream {
		terminal = state
	}

	assert.Equal(t, charts.StateSuccess, terminal.State)
	require.NotNil(t, terminal.Summary)
	assert.Equal(t, int64(900), terminal.Summary.TotalVolume)
}

func TestChartService_RegenerateSavedChart_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chartID := uuid.New()

	store := mocks.NewMockChartStore(ctrl)
	store.EXPECT().
		GetSavedChart(gomock.Any(), chartID).
		Return(db.SavedChart{}, db.ErrNotFound).
		Times(1)

	fetcher := mocks.NewMockRecordFetcher(ctrl)
	service := services.NewChartService(store, fetcher, nil)

	_, err := service.RegenerateSavedChart(context.Background(), chartID, testToken)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestChartService_PersistenceDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecordFetcher(ctrl)
	service := services.NewChartService(nil, fetcher, nil)

	_, err := service.SaveChart(context.Background(), services.SaveChartParams{
		Name: "anything",
		Request: charts.ChartRequest{
			ResourceType:    charts.ResourceTransaction,
			AggregationType: charts.AggregateByDay,
		},
	})
	assert.ErrorIs(t, err, services.ErrPersistenceDisabled)

	_, err = service.ListSavedCharts(context.Background(), 10, 0)
	assert.ErrorIs(t, err, services.ErrPersistenceDisabled)

	err = service.DeleteSavedChart(context.Background(), uuid.New())
	assert.ErrorIs(t, err, services.ErrPersistenceDisabled)
}

func TestChartService_GenerateChartWorksWithoutStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	fetcher := mocks.NewMockRecordFetcher(ctrl)
	fetcher.EXPECT().
		ListRecords(gomock.Any(), payrail.EndpointTransactions, testToken, gomock.Any()).
		Return([]payrail.Record{
			{ID: 1, Amount: 100, Currency: "USD", Status: "success", CreatedAt: created, Channel: "card"},
		}, nil).
		Times(1)

	service := services.NewChartService(nil, fetcher, nil)

	var terminal charts.ChartGenerationState
	for state := range service.GenerateChart(context.Background(), charts.ChartRequest{
		ResourceType:    charts.ResourceTransaction,
		AggregationType: charts.AggregateByChannel,
	}, testToken) {
		terminal = state
	}

	assert.Equal(t, charts.StateSuccess, terminal.State)
}
