package charts

import (
	"errors"
	"fmt"
	"time"

	"github.com/paylens/paylens-api/internal/client/payrail"
)

// ErrInvalidResourceType is returned when a resource type outside the
// four supported kinds reaches the field registry. This is a programming
// error, not a user-facing validation failure: request validation
// rejects unknown resource types before the registry is consulted.
var ErrInvalidResourceType = errors.New("invalid resource type")

// FieldConfig maps the abstract chartable fields onto a raw record's
// known shape for one resource type. The mandatory accessors are always
// set; the dimension accessors are nil for resources that do not carry
// that dimension. Configs are constructed once at process start and are
// never mutated.
type FieldConfig struct {
	Amount    func(r payrail.Record) int64
	Currency  func(r payrail.Record) string
	CreatedAt func(r payrail.Record) time.Time
	Status    func(r payrail.Record) string

	Channel    func(r payrail.Record) *string
	Type       func(r payrail.Record) *string
	Category   func(r payrail.Record) *string
	Resolution func(r payrail.Record) *string
}

func baseFieldConfig() FieldConfig {
	return FieldConfig{
		Amount:    func(r payrail.Record) int64 { return r.Amount },
		Currency:  func(r payrail.Record) string { return r.Currency },
		CreatedAt: func(r payrail.Record) time.Time { return r.CreatedAt },
		Status:    func(r payrail.Record) string { return r.Status },
	}
}

// optionalString converts an empty raw field to a nil dimension value.
func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

var (
	transactionFields = func() FieldConfig {
		config := baseFieldConfig()
		config.Channel = func(r payrail.Record) *string { return optionalString(r.Channel) }
		return config
	}()

	refundFields = func() FieldConfig {
		config := baseFieldConfig()
		config.Type = func(r payrail.Record) *string { return optionalString(r.Type) }
		return config
	}()

	payoutFields = baseFieldConfig()

	// Disputes carry two dimensions because both by-category and
	// by-resolution aggregations are in their allow-list.
	disputeFields = func() FieldConfig {
		config := baseFieldConfig()
		config.Category = func(r payrail.Record) *string { return optionalString(r.Category) }
		config.Resolution = func(r payrail.Record) *string { return optionalString(r.Resolution) }
		return config
	}()
)

// GetFieldConfig returns the accessor mapping for a resource type. It is
// total over the four supported kinds; anything else fails with
// ErrInvalidResourceType rather than silently defaulting.
func GetFieldConfig(resourceType ResourceType) (FieldConfig, error) {
	switch resourceType {
	case ResourceTransaction:
		return transactionFields, nil
	case ResourceRefund:
		return refundFields, nil
	case ResourcePayout:
		return payoutFields, nil
	case ResourceDispute:
		return disputeFields, nil
	default:
		return FieldConfig{}, fmt.Errorf("%w: %q", ErrInvalidResourceType, resourceType)
	}
}

// ToChartableRecords projects raw records into chartable records using
// the given config. The mapping is 1:1, preserves order and never
// mutates the input.
func ToChartableRecords(rawRecords []payrail.Record, config FieldConfig) []ChartableRecord {
	records := make([]ChartableRecord, len(rawRecords))
	for i, raw := range rawRecords {
		record := ChartableRecord{
			Amount:    config.Amount(raw),
			Currency:  config.Currency(raw),
			CreatedAt: config.CreatedAt(raw),
			Status:    config.Status(raw),
		}
		if config.Channel != nil {
			record.Channel = config.Channel(raw)
		}
		if config.Type != nil {
			record.Type = config.Type(raw)
		}
		if config.Category != nil {
			record.Category = config.Category(raw)
		}
		if config.Resolution != nil {
			record.Resolution = config.Resolution(raw)
		}
		records[i] = record
	}
	return records
}
