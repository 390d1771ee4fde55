// Package charts implements the chart generation and aggregation engine:
// request validation, paginated record fetching from the payments API,
// and aggregation of heterogeneous financial records into chart data
// with progressive status updates.
package charts

import "time"

// ResourceType identifies one of the four supported financial record kinds.
type ResourceType string

const (
	ResourceTransaction ResourceType = "transaction"
	ResourceRefund      ResourceType = "refund"
	ResourcePayout      ResourceType = "payout"
	ResourceDispute     ResourceType = "dispute"
)

// AggregationType is the dimension records are grouped by.
type AggregationType string

const (
	AggregateByDay        AggregationType = "by-day"
	AggregateByHour       AggregationType = "by-hour"
	AggregateByWeek       AggregationType = "by-week"
	AggregateByMonth      AggregationType = "by-month"
	AggregateByStatus     AggregationType = "by-status"
	AggregateByType       AggregationType = "by-type"
	AggregateByCategory   AggregationType = "by-category"
	AggregateByResolution AggregationType = "by-resolution"
	AggregateByChannel    AggregationType = "by-channel"
)

// ChartRequest is the immutable input to a chart generation run.
// Status, From, To, Currency and Channel are optional filters; Channel
// is meaningful only for transactions.
type ChartRequest struct {
	ResourceType    ResourceType    `json:"resourceType" binding:"required"`
	AggregationType AggregationType `json:"aggregationType" binding:"required"`
	Status          string          `json:"status,omitempty"`
	From            string          `json:"from,omitempty"`
	To              string          `json:"to,omitempty"`
	Currency        string          `json:"currency,omitempty"`
	Channel         string          `json:"channel,omitempty"`
}

// ChartableRecord is the normalized, resource-agnostic projection of a
// raw record used solely for aggregation. Amounts are integer minor
// currency units. The dimension pointers are nil when the source
// resource does not carry that field.
type ChartableRecord struct {
	Amount     int64
	Currency   string
	CreatedAt  time.Time
	Status     string
	Channel    *string
	Type       *string
	Category   *string
	Resolution *string
}

// ChartPoint is a single labeled value in a chart series.
type ChartPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// ChartSeries is a named, ordered sequence of points.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// AggregationResult holds the chart payload. Exactly one of ChartData
// (single-series aggregations) or Series (multi-dimension aggregations)
// is populated, determined by the aggregation type's chart shape.
type AggregationResult struct {
	ChartData []ChartPoint  `json:"chartData,omitempty"`
	Series    []ChartSeries `json:"chartSeries,omitempty"`
}

// DateRange is a display-formatted date range.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ChartSummary carries the overall statistics for a generated chart.
// TotalVolume is in integer minor units; OverallAverage is recomputed
// from TotalVolume/TotalCount at summary time, never accumulated.
type ChartSummary struct {
	TotalCount     int64      `json:"totalCount"`
	TotalVolume    int64      `json:"totalVolume"`
	OverallAverage float64    `json:"overallAverage"`
	Truncated      bool       `json:"truncated,omitempty"`
	DateRange      *DateRange `json:"dateRange,omitempty"`
}

// StateKind tags a ChartGenerationState variant.
type StateKind string

const (
	StateLoading   StateKind = "loading"
	StateSuccess   StateKind = "success"
	StateError     StateKind = "error"
	StateCancelled StateKind = "cancelled"
)

// ChartGenerationState is one value in the progress stream of a chart
// generation run. A run produces zero or more Loading states followed by
// exactly one terminal state (Success, Error or Cancelled).
type ChartGenerationState struct {
	State     StateKind `json:"state"`
	Label     string    `json:"label,omitempty"`
	ChartType string    `json:"chartType,omitempty"`
	Message   string    `json:"message,omitempty"`

	// Populated on Success only.
	AggregationResult
	Summary *ChartSummary `json:"summary,omitempty"`

	// Populated on Error only.
	Error string `json:"error,omitempty"`
}

// Terminal reports whether no further states will follow this one.
func (s ChartGenerationState) Terminal() bool {
	return s.State != StateLoading
}

func loadingState(label, chartType, message string) ChartGenerationState {
	return ChartGenerationState{
		State:     StateLoading,
		Label:     label,
		ChartType: chartType,
		Message:   message,
	}
}

func successState(result AggregationResult, summary ChartSummary, label, chartType, message string) ChartGenerationState {
	return ChartGenerationState{
		State:             StateSuccess,
		Label:             label,
		ChartType:         chartType,
		Message:           message,
		AggregationResult: result,
		Summary:           &summary,
	}
}

func errorState(message string) ChartGenerationState {
	return ChartGenerationState{
		State: StateError,
		Error: message,
	}
}

func cancelledState() ChartGenerationState {
	return ChartGenerationState{
		State:   StateCancelled,
		Message: "Chart generation cancelled.",
	}
}
