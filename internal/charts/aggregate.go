package charts

import (
	"fmt"
	"sort"
	"time"
)

// unknownBucket groups records whose categorical dimension is missing.
// They are charted rather than dropped.
const unknownBucket = "unknown"

const displayDateLayout = "Jan 2, 2006"

// temporalAggregations maps each temporal aggregation to its bucket
// truncation and label format.
var temporalGranularities = map[AggregationType]struct {
	truncate func(t time.Time) time.Time
	label    func(t time.Time) string
}{
	AggregateByHour: {
		truncate: func(t time.Time) time.Time { return t.UTC().Truncate(time.Hour) },
		label:    func(t time.Time) string { return t.Format("2006-01-02 15:00") },
	},
	AggregateByDay: {
		truncate: func(t time.Time) time.Time {
			u := t.UTC()
			return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
		},
		label: func(t time.Time) string { return t.Format("2006-01-02") },
	},
	AggregateByWeek: {
		truncate: func(t time.Time) time.Time {
			u := t.UTC()
			day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
			// Back up to Monday.
			offset := (int(day.Weekday()) + 6) % 7
			return day.AddDate(0, 0, -offset)
		},
		label: func(t time.Time) string { return "Week of " + t.Format("2006-01-02") },
	},
	AggregateByMonth: {
		truncate: func(t time.Time) time.Time {
			u := t.UTC()
			return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
		},
		label: func(t time.Time) string { return t.Format("Jan 2006") },
	},
}

// IsTemporal reports whether the aggregation groups by a time
// granularity rather than a categorical field.
func IsTemporal(aggregationType AggregationType) bool {
	_, ok := temporalGranularities[aggregationType]
	return ok
}

// ChartTypeFor returns the chart rendering hint for an aggregation:
// temporal aggregations chart as lines, categorical ones as bars.
func ChartTypeFor(aggregationType AggregationType) string {
	if IsTemporal(aggregationType) {
		return "line"
	}
	return "bar"
}

// Aggregate buckets normalized records by the requested dimension and
// sums amounts per bucket in integer minor-unit space. Temporal buckets
// are ordered chronologically and sparse: intervals with no records
// produce no point. Categorical buckets appear in first-seen order, with
// missing dimension values grouped under the "unknown" bucket.
func Aggregate(records []ChartableRecord, aggregationType AggregationType) (AggregationResult, error) {
	if granularity, ok := temporalGranularities[aggregationType]; ok {
		return aggregateTemporal(records, granularity.truncate, granularity.label), nil
	}

	dimension, err := categoricalDimension(aggregationType)
	if err != nil {
		return AggregationResult{}, err
	}
	return aggregateCategorical(records, dimension), nil
}

func aggregateTemporal(
	records []ChartableRecord,
	truncate func(time.Time) time.Time,
	label func(time.Time) string,
) AggregationResult {
	totals := make(map[time.Time]int64)
	for _, record := range records {
		bucket := truncate(record.CreatedAt)
		totals[bucket] += record.Amount
	}

	buckets := make([]time.Time, 0, len(totals))
	for bucket := range totals {
		buckets = append(buckets, bucket)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	points := make([]ChartPoint, 0, len(buckets))
	for _, bucket := range buckets {
		points = append(points, ChartPoint{Label: label(bucket), Value: totals[bucket]})
	}

	return AggregationResult{ChartData: points}
}

// categoricalDimension resolves the record field a categorical
// aggregation buckets on.
func categoricalDimension(aggregationType AggregationType) (func(r ChartableRecord) *string, error) {
	switch aggregationType {
	case AggregateByStatus:
		return func(r ChartableRecord) *string { return optionalString(r.Status) }, nil
	case AggregateByChannel:
		return func(r ChartableRecord) *string { return r.Channel }, nil
	case AggregateByType:
		return func(r ChartableRecord) *string { return r.Type }, nil
	case AggregateByCategory:
		return func(r ChartableRecord) *string { return r.Category }, nil
	case AggregateByResolution:
		return func(r ChartableRecord) *string { return r.Resolution }, nil
	default:
		return nil, fmt.Errorf("unsupported aggregation type: %q", aggregationType)
	}
}

func aggregateCategorical(records []ChartableRecord, dimension func(r ChartableRecord) *string) AggregationResult {
	totals := make(map[string]int64)
	order := make([]string, 0)

	for _, record := range records {
		key := unknownBucket
		if value := dimension(record); value != nil {
			key = *value
		}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += record.Amount
	}

	points := make([]ChartPoint, 0, len(order))
	for _, key := range order {
		points = append(points, ChartPoint{Label: key, Value: totals[key]})
	}

	return AggregationResult{ChartData: points}
}

// CalculateSummary computes the overall statistics for the full record
// set, not per bucket. The average divides total volume by total count
// only here, at summary time; it is zero when there are no records. The
// display date range is included when either bound was supplied, with
// the missing bound defaulting to today.
func CalculateSummary(records []ChartableRecord, from, to string) ChartSummary {
	var totalVolume int64
	for _, record := range records {
		totalVolume += record.Amount
	}

	summary := ChartSummary{
		TotalCount:  int64(len(records)),
		TotalVolume: totalVolume,
	}
	if summary.TotalCount > 0 {
		summary.OverallAverage = float64(totalVolume) / float64(summary.TotalCount)
	}

	if from != "" || to != "" {
		summary.DateRange = &DateRange{
			From: displayDate(from),
			To:   displayDate(to),
		}
	}

	return summary
}

// displayDate formats a YYYY-MM-DD bound for display, substituting
// today when the bound was omitted.
func displayDate(value string) string {
	if value == "" {
		return time.Now().Format(displayDateLayout)
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return value
	}
	return parsed.Format(displayDateLayout)
}
