package charts

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxDateRangeDays is the widest date range a single chart may cover.
const MaxDateRangeDays = 30

const dateLayout = "2006-01-02"

// allowedAggregations is the static allow-list of aggregation types per
// resource type. Validation passes only for pairs listed here.
var allowedAggregations = map[ResourceType][]AggregationType{
	ResourceTransaction: {
		AggregateByDay, AggregateByHour, AggregateByWeek, AggregateByMonth,
		AggregateByStatus, AggregateByChannel,
	},
	ResourceRefund: {
		AggregateByDay, AggregateByWeek, AggregateByMonth,
		AggregateByStatus, AggregateByType,
	},
	ResourcePayout: {
		AggregateByDay, AggregateByWeek, AggregateByMonth,
		AggregateByStatus,
	},
	ResourceDispute: {
		AggregateByDay, AggregateByWeek, AggregateByMonth,
		AggregateByStatus, AggregateByCategory, AggregateByResolution,
	},
}

// Each resource type has its own status vocabulary.
var resourceStatuses = map[ResourceType][]string{
	ResourceTransaction: {"success", "failed", "abandoned", "reversed", "ongoing", "queued"},
	ResourceRefund:      {"pending", "processing", "processed", "failed"},
	ResourcePayout:      {"pending", "processing", "success", "failed"},
	ResourceDispute: {
		"awaiting-merchant-feedback", "awaiting-bank-feedback", "pending",
		"resolved", "declined", "merchant-accepted", "archived",
	},
}

// paymentChannels is the channel vocabulary for transactions.
var paymentChannels = []string{
	"card", "bank", "bank_transfer", "ussd", "qr", "mobile_money", "eft", "apple_pay",
}

// ValidationResult is the outcome of request validation.
type ValidationResult struct {
	IsValid bool
	Error   string
}

func valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

func invalid(format string, args ...interface{}) ValidationResult {
	return ValidationResult{IsValid: false, Error: fmt.Sprintf(format, args...)}
}

// DateRangeResult is the outcome of date range validation.
// DaysDifference is meaningful only when at least one bound was given
// and both parsed.
type DateRangeResult struct {
	IsValid        bool
	Error          string
	DaysDifference int
}

// ValidateChartParams validates a chart request against the per-resource
// rules before any I/O happens. Checks run in order and short-circuit on
// the first failure. The function is pure: no side effects regardless of
// outcome.
func ValidateChartParams(req ChartRequest) ValidationResult {
	allowed, known := allowedAggregations[req.ResourceType]
	if !known {
		return invalid("Unknown resource type %q. Valid resource types: %s.",
			req.ResourceType, strings.Join(resourceTypeNames(), ", "))
	}

	if !containsAggregation(allowed, req.AggregationType) {
		return invalid("Aggregation %q is not supported for %s charts. Valid aggregations: %s.",
			req.AggregationType, req.ResourceType, joinAggregations(allowed))
	}

	if req.Status != "" {
		statuses := resourceStatuses[req.ResourceType]
		if !containsString(statuses, req.Status) {
			return invalid("Invalid status %q for %s. Valid statuses: %s.",
				req.Status, req.ResourceType, strings.Join(statuses, ", "))
		}
	}

	if req.Channel != "" {
		if req.ResourceType != ResourceTransaction {
			return invalid("The channel filter is only supported for transactions.")
		}
		if !containsString(paymentChannels, req.Channel) {
			return invalid("Invalid channel %q. Valid channels: %s.",
				req.Channel, strings.Join(paymentChannels, ", "))
		}
	}

	if dateResult := ValidateDateRange(req.From, req.To); !dateResult.IsValid {
		return ValidationResult{IsValid: false, Error: dateResult.Error}
	}

	return valid()
}

// ValidateDateRange checks format, ordering and span of an optional date
// range. When only one bound is supplied the other defaults to today and
// the span is measured against it. The day count uses calendar-day
// ceiling division so a 30-day-and-one-hour span counts as 31 days.
func ValidateDateRange(from, to string) DateRangeResult {
	if from == "" && to == "" {
		return DateRangeResult{IsValid: true}
	}

	var fromDate, toDate time.Time
	var err error

	if from != "" {
		fromDate, err = time.Parse(dateLayout, from)
		if err != nil {
			return DateRangeResult{
				Error: "Invalid 'from' date. Expected ISO-8601 format (YYYY-MM-DD).",
			}
		}
	}
	if to != "" {
		toDate, err = time.Parse(dateLayout, to)
		if err != nil {
			return DateRangeResult{
				Error: "Invalid 'to' date. Expected ISO-8601 format (YYYY-MM-DD).",
			}
		}
	}

	if from != "" && to != "" {
		if fromDate.After(toDate) {
			return DateRangeResult{Error: "Invalid date range: 'from' cannot be after 'to'."}
		}

		days := daysBetween(fromDate, toDate)
		if days > MaxDateRangeDays {
			return DateRangeResult{
				Error: fmt.Sprintf("Date range spans %d days; the maximum allowed is %d days.",
					days, MaxDateRangeDays),
				DaysDifference: days,
			}
		}
		return DateRangeResult{IsValid: true, DaysDifference: days}
	}

	if from != "" {
		days := daysBetween(fromDate, time.Now())
		if days > MaxDateRangeDays {
			return DateRangeResult{
				Error: fmt.Sprintf("Date range spans %d days with today as the implicit 'to'; the maximum allowed is %d days.",
					days, MaxDateRangeDays),
				DaysDifference: days,
			}
		}
		return DateRangeResult{IsValid: true, DaysDifference: days}
	}

	// Only 'to' supplied: today is the implicit start.
	days := daysBetween(time.Now(), toDate)
	if days > MaxDateRangeDays {
		return DateRangeResult{
			Error: fmt.Sprintf("Date range spans %d days with today as the implicit 'from'; the maximum allowed is %d days.",
				days, MaxDateRangeDays),
			DaysDifference: days,
		}
	}
	return DateRangeResult{IsValid: true, DaysDifference: days}
}

// daysBetween returns the ceiling of the span between two instants in
// calendar days. Negative spans (a 'to' in the past relative to the
// implicit start) count as zero.
func daysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func containsAggregation(list []AggregationType, value AggregationType) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func joinAggregations(list []AggregationType) string {
	names := make([]string, len(list))
	for i, item := range list {
		names[i] = string(item)
	}
	return strings.Join(names, ", ")
}

func resourceTypeNames() []string {
	return []string{
		string(ResourceTransaction), string(ResourceRefund),
		string(ResourcePayout), string(ResourceDispute),
	}
}
