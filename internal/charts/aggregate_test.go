package charts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylens/paylens-api/internal/charts"
)

func chartable(amount int64, created time.Time) charts.ChartableRecord {
	return charts.ChartableRecord{
		Amount:    amount,
		Currency:  "USD",
		Status:    "success",
		CreatedAt: created,
	}
}

func strPtr(s string) *string { return &s }

func TestAggregate_ByDayTwoBuckets(t *testing.T) {
	dayOne := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	dayTwo := time.Date(2024, 3, 2, 17, 30, 0, 0, time.UTC)

	records := []charts.ChartableRecord{
		// Deliberately out of chronological order.
		chartable(700, dayTwo),
		chartable(100, dayOne),
		chartable(250, dayOne.Add(2*time.Hour)),
	}

	result, err := charts.Aggregate(records, charts.AggregateByDay)
	require.NoError(t, err)
	require.Len(t, result.ChartData, 2)

	assert.Equal(t, "2024-03-01", result.ChartData[0].Label)
	assert.Equal(t, int64(350), result.ChartData[0].Value)
	assert.Equal(t, "2024-03-02", result.ChartData[1].Label)
	assert.Equal(t, int64(700), result.ChartData[1].Value)
}

func TestAggregate_ByDayIsSparse(t *testing.T) {
	// Three records across March 1 and March 5; the days in between
	// produce no points.
	records := []charts.ChartableRecord{
		chartable(100, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)),
		chartable(200, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)),
		chartable(300, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)),
	}

	result, err := charts.Aggregate(records, charts.AggregateByDay)
	require.NoError(t, err)
	require.Len(t, result.ChartData, 2)
	assert.Equal(t, "2024-03-01", result.ChartData[0].Label)
	assert.Equal(t, "2024-03-05", result.ChartData[1].Label)
}

func TestAggregate_TemporalGranularities(t *testing.T) {
	created := time.Date(2024, 3, 6, 14, 45, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		name        string
		aggregation charts.AggregationType
		wantLabel   string
	}{
		{"hour buckets", charts.AggregateByHour, "2024-03-06 14:00"},
		{"week buckets start on Monday", charts.AggregateByWeek, "Week of 2024-03-04"},
		{"month buckets", charts.AggregateByMonth, "Mar 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := charts.Aggregate([]charts.ChartableRecord{chartable(500, created)}, tt.aggregation)
			require.NoError(t, err)
			require.Len(t, result.ChartData, 1)
			assert.Equal(t, tt.wantLabel, result.ChartData[0].Label)
			assert.Equal(t, int64(500), result.ChartData[0].Value)
		})
	}
}

func TestAggregate_ByStatusFirstSeenOrder(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []charts.ChartableRecord{
		{Amount: 100, Status: "failed", CreatedAt: created},
		{Amount: 200, Status: "success", CreatedAt: created},
		{Amount: 300, Status: "failed", CreatedAt: created},
	}

	result, err := charts.Aggregate(records, charts.AggregateByStatus)
	require.NoError(t, err)
	require.Len(t, result.ChartData, 2)

	assert.Equal(t, charts.ChartPoint{Label: "failed", Value: 400}, result.ChartData[0])
	assert.Equal(t, charts.ChartPoint{Label: "success", Value: 200}, result.ChartData[1])
}

func TestAggregate_MissingDimensionGroupsAsUnknown(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []charts.ChartableRecord{
		{Amount: 100, Status: "success", CreatedAt: created, Channel: strPtr("card")},
		{Amount: 250, Status: "success", CreatedAt: created},
		{Amount: 50, Status: "success", CreatedAt: created},
	}

	result, err := charts.Aggregate(records, charts.AggregateByChannel)
	require.NoError(t, err)
	require.Len(t, result.ChartData, 2)

	assert.Equal(t, charts.ChartPoint{Label: "card", Value: 100}, result.ChartData[0])
	assert.Equal(t, charts.ChartPoint{Label: "unknown", Value: 300}, result.ChartData[1])
}

func TestAggregate_DisputeDimensions(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []charts.ChartableRecord{
		{Amount: 100, Status: "resolved", CreatedAt: created, Category: strPtr("chargeback"), Resolution: strPtr("merchant-accepted")},
		{Amount: 200, Status: "resolved", CreatedAt: created, Category: strPtr("fraud"), Resolution: strPtr("declined")},
		{Amount: 300, Status: "resolved", CreatedAt: created, Category: strPtr("chargeback"), Resolution: strPtr("merchant-accepted")},
	}

	byCategory, err := charts.Aggregate(records, charts.AggregateByCategory)
	require.NoError(t, err)
	assert.Equal(t, []charts.ChartPoint{
		{Label: "chargeback", Value: 400},
		{Label: "fraud", Value: 200},
	}, byCategory.ChartData)

	byResolution, err := charts.Aggregate(records, charts.AggregateByResolution)
	require.NoError(t, err)
	assert.Equal(t, []charts.ChartPoint{
		{Label: "merchant-accepted", Value: 400},
		{Label: "declined", Value: 200},
	}, byResolution.ChartData)
}

func TestCalculateSummary(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []charts.ChartableRecord{
		chartable(1000, created),
		chartable(2500, created),
		chartable(501, created),
	}

	summary := charts.CalculateSummary(records, "", "")

	assert.Equal(t, int64(3), summary.TotalCount)
	assert.Equal(t, int64(4001), summary.TotalVolume)
	assert.InDelta(t, 4001.0/3.0, summary.OverallAverage, 1e-9)
	assert.Nil(t, summary.DateRange)
}

func TestCalculateSummary_Empty(t *testing.T) {
	summary := charts.CalculateSummary(nil, "", "")

	assert.Equal(t, int64(0), summary.TotalCount)
	assert.Equal(t, int64(0), summary.TotalVolume)
	assert.Equal(t, float64(0), summary.OverallAverage)
}

func TestCalculateSummary_DateRangeFormatting(t *testing.T) {
	summary := charts.CalculateSummary(nil, "2024-01-01", "2024-01-31")

	require.NotNil(t, summary.DateRange)
	assert.Equal(t, "Jan 1, 2024", summary.DateRange.From)
	assert.Equal(t, "Jan 31, 2024", summary.DateRange.To)

	// A single bound still yields a range, with today filling the gap.
	summary = charts.CalculateSummary(nil, "2024-01-01", "")
	require.NotNil(t, summary.DateRange)
	assert.Equal(t, "Jan 1, 2024", summary.DateRange.From)
	assert.Equal(t, time.Now().Format("Jan 2, 2006"), summary.DateRange.To)
}

func TestChartTypeFor(t *testing.T) {
	assert.Equal(t, "line", charts.ChartTypeFor(charts.AggregateByDay))
	assert.Equal(t, "line", charts.ChartTypeFor(charts.AggregateByHour))
	assert.Equal(t, "bar", charts.ChartTypeFor(charts.AggregateByStatus))
	assert.Equal(t, "bar", charts.ChartTypeFor(charts.AggregateByChannel))
}
