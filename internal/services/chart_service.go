package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/paylens/paylens-api/internal/charts"
	"github.com/paylens/paylens-api/internal/db"
)

var (
	// ErrPersistenceDisabled is returned for saved-chart operations when
	// the service runs without a database.
	ErrPersistenceDisabled = errors.New("saved chart persistence is disabled")

	// ErrInvalidChartConfig is returned when a chart configuration fails
	// validation before being persisted.
	ErrInvalidChartConfig = errors.New("invalid chart configuration")
)

// ChartStore is the persistence contract for saved chart configurations.
type ChartStore interface {
	CreateSavedChart(ctx context.Context, params db.CreateSavedChartParams) (db.SavedChart, error)
	GetSavedChart(ctx context.Context, id uuid.UUID) (db.SavedChart, error)
	ListSavedCharts(ctx context.Context, limit, offset int32) ([]db.SavedChart, error)
	DeleteSavedChart(ctx context.Context, id uuid.UUID) error
}

// ChartService drives chart generation and saved-chart management. The
// store may be nil, in which case generation still works but saved-chart
// operations fail with ErrPersistenceDisabled.
type ChartService struct {
	store     ChartStore
	fetcher   charts.RecordFetcher
	generator *charts.Generator
	logger    *zap.Logger
}

// NewChartService creates a new chart service.
func NewChartService(store ChartStore, fetcher charts.RecordFetcher, log *zap.Logger) *ChartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChartService{
		store:     store,
		fetcher:   fetcher,
		generator: charts.NewGenerator(log),
		logger:    log,
	}
}

// GenerateChart starts a chart generation run and returns its state
// stream.
func (s *ChartService) GenerateChart(ctx context.Context, req charts.ChartRequest, authToken string) <-chan charts.ChartGenerationState {
	return s.generator.Stream(ctx, req, s.fetcher, authToken)
}

// SaveChartParams holds the fields for saving a chart configuration.
type SaveChartParams struct {
	Name    string `json:"name" binding:"required"`
	Request charts.ChartRequest
}

// SaveChart validates and persists a chart configuration for later
// regeneration. Invalid configurations are rejected up front so a saved
// chart can always be regenerated.
func (s *ChartService) SaveChart(ctx context.Context, params SaveChartParams) (db.SavedChart, error) {
	if s.store == nil {
		return db.SavedChart{}, ErrPersistenceDisabled
	}

	if result := charts.ValidateChartParams(params.Request); !result.IsValid {
		return db.SavedChart{}, fmt.Errorf("%w: %s", ErrInvalidChartConfig, result.Error)
	}

	saved, err := s.store.CreateSavedChart(ctx, db.CreateSavedChartParams{
		Name:            params.Name,
		ResourceType:    string(params.Request.ResourceType),
		AggregationType: string(params.Request.AggregationType),
		Status:          params.Request.Status,
		DateFrom:        params.Request.From,
		DateTo:          params.Request.To,
		Currency:        params.Request.Currency,
		Channel:         params.Request.Channel,
	})
	if err != nil {
		return db.SavedChart{}, errors.Wrap(err, "failed to save chart")
	}

	s.logger.Info("chart saved",
		zap.String("id", saved.ID.String()),
		zap.String("resource", saved.ResourceType),
		zap.String("aggregation", saved.AggregationType))

	return saved, nil
}

// GetSavedChart fetches one saved chart.
func (s *ChartService) GetSavedChart(ctx context.Context, id uuid.UUID) (db.SavedChart, error) {
	if s.store == nil {
		return db.SavedChart{}, ErrPersistenceDisabled
	}
	return s.store.GetSavedChart(ctx, id)
}

// ListSavedCharts lists saved charts.
func (s *ChartService) ListSavedCharts(ctx context.Context, limit, offset int32) ([]db.SavedChart, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.store.ListSavedCharts(ctx, limit, offset)
}

// DeleteSavedChart removes a saved chart.
func (s *ChartService) DeleteSavedChart(ctx context.Context, id uuid.UUID) error {
	if s.store == nil {
		return ErrPersistenceDisabled
	}
	return s.store.DeleteSavedChart(ctx, id)
}

// RegenerateSavedChart loads a saved chart configuration and runs chart
// generation for it with the caller's token.
func (s *ChartService) RegenerateSavedChart(ctx context.Context, id uuid.UUID, authToken string) (<-chan charts.ChartGenerationState, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}

	saved, err := s.store.GetSavedChart(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.GenerateChart(ctx, requestFromSaved(saved), authToken), nil
}

// requestFromSaved rebuilds the chart request a saved chart was created
// from.
func requestFromSaved(saved db.SavedChart) charts.ChartRequest {
	return charts.ChartRequest{
		ResourceType:    charts.ResourceType(saved.ResourceType),
		AggregationType: charts.AggregationType(saved.AggregationType),
		Status:          saved.Status.String,
		From:            saved.DateFrom.String,
		To:              saved.DateTo.String,
		Currency:        saved.Currency.String,
		Channel:         saved.Channel.String,
	}
}
