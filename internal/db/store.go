// Package db provides the Postgres-backed store for saved chart
// configurations. Migrations are managed outside this service; the
// store assumes the saved_charts table exists.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a saved chart does not exist.
var ErrNotFound = errors.New("saved chart not found")

// SavedChart is a persisted chart configuration that can be regenerated
// on demand. Optional filters are nullable columns.
type SavedChart struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	ResourceType    string             `json:"resourceType"`
	AggregationType string             `json:"aggregationType"`
	Status          pgtype.Text        `json:"status"`
	DateFrom        pgtype.Text        `json:"from"`
	DateTo          pgtype.Text        `json:"to"`
	Currency        pgtype.Text        `json:"currency"`
	Channel         pgtype.Text        `json:"channel"`
	CreatedAt       pgtype.Timestamptz `json:"createdAt"`
	UpdatedAt       pgtype.Timestamptz `json:"updatedAt"`
}

// CreateSavedChartParams holds the fields for a new saved chart.
type CreateSavedChartParams struct {
	Name            string
	ResourceType    string
	AggregationType string
	Status          string
	DateFrom        string
	DateTo          string
	Currency        string
	Channel         string
}

// Store wraps the connection pool with saved-chart queries.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new store over the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const savedChartColumns = `id, name, resource_type, aggregation_type, status, date_from, date_to, currency, channel, created_at, updated_at`

func scanSavedChart(row pgx.Row) (SavedChart, error) {
	var chart SavedChart
	err := row.Scan(
		&chart.ID, &chart.Name, &chart.ResourceType, &chart.AggregationType,
		&chart.Status, &chart.DateFrom, &chart.DateTo, &chart.Currency,
		&chart.Channel, &chart.CreatedAt, &chart.UpdatedAt,
	)
	return chart, err
}

// optionalText maps an empty string to a NULL column value.
func optionalText(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}

// CreateSavedChart inserts a saved chart and returns the stored row.
func (s *Store) CreateSavedChart(ctx context.Context, params CreateSavedChartParams) (SavedChart, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO saved_charts (id, name, resource_type, aggregation_type, status, date_from, date_to, currency, channel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+savedChartColumns,
		uuid.New(), params.Name, params.ResourceType, params.AggregationType,
		optionalText(params.Status), optionalText(params.DateFrom), optionalText(params.DateTo),
		optionalText(params.Currency), optionalText(params.Channel),
	)

	chart, err := scanSavedChart(row)
	if err != nil {
		return SavedChart{}, fmt.Errorf("failed to create saved chart: %w", err)
	}
	return chart, nil
}

// GetSavedChart fetches one saved chart by ID.
func (s *Store) GetSavedChart(ctx context.Context, id uuid.UUID) (SavedChart, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+savedChartColumns+`
		FROM saved_charts
		WHERE id = $1`, id)

	chart, err := scanSavedChart(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavedChart{}, ErrNotFound
		}
		return SavedChart{}, fmt.Errorf("failed to get saved chart: %w", err)
	}
	return chart, nil
}

// ListSavedCharts returns saved charts ordered by creation time, newest
// first.
func (s *Store) ListSavedCharts(ctx context.Context, limit, offset int32) ([]SavedChart, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+savedChartColumns+`
		FROM saved_charts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved charts: %w", err)
	}
	defer rows.Close()

	charts := make([]SavedChart, 0)
	for rows.Next() {
		chart, err := scanSavedChart(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved chart: %w", err)
		}
		charts = append(charts, chart)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read saved charts: %w", err)
	}

	return charts, nil
}

// DeleteSavedChart removes a saved chart by ID.
func (s *Store) DeleteSavedChart(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_charts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved chart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
