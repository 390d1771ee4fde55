package charts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	authTokenMissingMessage = "Authentication token not available. Please sign in again."
	genericFetchMessage     = "Failed to fetch records from the payments API."
)

// Generator runs chart generation as a single sequential task per
// request and reports progress through an ordered state stream. It is
// stateless and safe for concurrent use; each run owns its own
// accumulator.
type Generator struct {
	log *zap.Logger
}

// NewGenerator creates a chart generator. A nil logger disables logging.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

// Stream starts a chart generation run and returns its state stream.
// The stream carries zero or more Loading states followed by exactly one
// terminal state, then closes. Each state is handed off to the consumer
// before the next page fetch begins, so the consumer observes progress
// in strict temporal order. Cancelling the context between fetches ends
// the stream with a Cancelled terminal state.
func (g *Generator) Stream(ctx context.Context, req ChartRequest, fetcher RecordFetcher, authToken string) <-chan ChartGenerationState {
	out := make(chan ChartGenerationState)
	go func() {
		defer close(out)
		g.run(ctx, req, fetcher, authToken, out)
	}()
	return out
}

// Generate runs chart generation to completion, discarding intermediate
// states, and returns the terminal state.
func (g *Generator) Generate(ctx context.Context, req ChartRequest, fetcher RecordFetcher, authToken string) ChartGenerationState {
	terminal := cancelledState()
	for state := range g.Stream(ctx, req, fetcher, authToken) {
		terminal = state
	}
	return terminal
}

func (g *Generator) run(ctx context.Context, req ChartRequest, fetcher RecordFetcher, authToken string, out chan<- ChartGenerationState) {
	// emit hands one state to the consumer. It reports false when the
	// consumer is gone, which aborts the run without a terminal state
	// since nobody is left to observe one.
	emit := func(state ChartGenerationState) bool {
		select {
		case out <- state:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if strings.TrimSpace(authToken) == "" {
		emit(errorState(authTokenMissingMessage))
		return
	}

	if result := ValidateChartParams(req); !result.IsValid {
		g.log.Debug("chart request rejected",
			zap.String("resource", string(req.ResourceType)),
			zap.String("aggregation", string(req.AggregationType)),
			zap.String("reason", result.Error))
		emit(errorState(result.Error))
		return
	}

	// Validation guarantees a known resource type, so a registry miss
	// here is a programming error.
	fieldConfig, err := GetFieldConfig(req.ResourceType)
	if err != nil {
		g.log.Error("field registry lookup failed after validation", zap.Error(err))
		emit(errorState(err.Error()))
		return
	}

	label := chartLabel(req)
	chartType := ChartTypeFor(req.AggregationType)

	rawRecords, err := fetchAllRecords(ctx, req, fetcher, authToken, func(fetched int) bool {
		return emit(loadingState(label, chartType,
			fmt.Sprintf("Fetching %s records... %d so far", req.ResourceType, fetched)))
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			emit(cancelledState())
			return
		}
		message := err.Error()
		if message == "" {
			message = genericFetchMessage
		}
		g.log.Warn("record fetch failed",
			zap.String("resource", string(req.ResourceType)),
			zap.Error(err))
		// Partial data already accumulated is discarded, never
		// partially reported.
		emit(errorState(message))
		return
	}

	if len(rawRecords) == 0 {
		emit(successState(
			AggregationResult{ChartData: []ChartPoint{}},
			CalculateSummary(nil, req.From, req.To),
			label, chartType,
			"No records found for the selected filters."))
		return
	}

	records := ToChartableRecords(rawRecords, fieldConfig)

	result, err := Aggregate(records, req.AggregationType)
	if err != nil {
		emit(errorState(err.Error()))
		return
	}

	summary := CalculateSummary(records, req.From, req.To)
	if len(records) >= PageSize*MaxPages {
		// The page cap silently truncates larger result sets; flag it
		// so callers can surface a warning.
		summary.Truncated = true
	}

	emit(successState(result, summary, label, chartType,
		fmt.Sprintf("Chart generated from %d records.", len(records))))
}

// chartLabel builds the human-readable chart title, e.g.
// "Transactions by day".
func chartLabel(req ChartRequest) string {
	resources := map[ResourceType]string{
		ResourceTransaction: "Transactions",
		ResourceRefund:      "Refunds",
		ResourcePayout:      "Payouts",
		ResourceDispute:     "Disputes",
	}
	name, ok := resources[req.ResourceType]
	if !ok {
		name = string(req.ResourceType)
	}
	return name + " " + strings.ReplaceAll(string(req.AggregationType), "-", " ")
}
