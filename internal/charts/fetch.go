package charts

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/paylens/paylens-api/internal/client/payrail"
)

// Paging policy for chart data: at most MaxPages pages of PageSize
// records per chart, a hard cap of 1000 records.
const (
	PageSize = 100
	MaxPages = 10
)

// RecordFetcher is the collaborator contract for the upstream records
// API. Implementations make one network round trip per call and must
// return a distinguishable error when the caller's token is rejected.
type RecordFetcher interface {
	ListRecords(ctx context.Context, endpoint, authToken string, params url.Values) ([]payrail.Record, error)
}

// endpointFor maps a resource type to its fixed API path. Exhaustive
// over the four supported kinds.
func endpointFor(resourceType ResourceType) (string, error) {
	switch resourceType {
	case ResourceTransaction:
		return payrail.EndpointTransactions, nil
	case ResourceRefund:
		return payrail.EndpointRefunds, nil
	case ResourcePayout:
		return payrail.EndpointPayouts, nil
	case ResourceDispute:
		return payrail.EndpointDisputes, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidResourceType, resourceType)
	}
}

// pageParams builds the query for one page, merging the request's
// resource-appropriate filters with the pagination fields.
func pageParams(req ChartRequest, page int) url.Values {
	params := url.Values{}
	params.Set("perPage", strconv.Itoa(PageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("use_cursor", "false")

	if req.From != "" {
		params.Set("from", req.From)
	}
	if req.To != "" {
		params.Set("to", req.To)
	}
	if req.Status != "" {
		params.Set("status", req.Status)
	}
	if req.Currency != "" {
		params.Set("currency", req.Currency)
	}
	if req.ResourceType == ResourceTransaction {
		// Trim the transaction payload to the charted fields.
		params.Set("reduced_fields", "true")
		if req.Channel != "" {
			params.Set("channel", req.Channel)
		}
	}

	return params
}

// fetchAllRecords pages through the records API until a short page or
// the page cap. After every full page except the last allowed one it
// reports the running total through onProgress, giving the caller a
// chance to surface incremental progress before the next fetch begins.
// onProgress returns false to stop fetching (consumer cancelled).
func fetchAllRecords(
	ctx context.Context,
	req ChartRequest,
	fetcher RecordFetcher,
	authToken string,
	onProgress func(fetched int) bool,
) ([]payrail.Record, error) {
	endpoint, err := endpointFor(req.ResourceType)
	if err != nil {
		return nil, err
	}

	var accumulated []payrail.Record

	for page := 1; page <= MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageRecords, err := fetcher.ListRecords(ctx, endpoint, authToken, pageParams(req, page))
		if err != nil {
			return nil, err
		}

		accumulated = append(accumulated, pageRecords...)

		// A short page means there is no more data.
		if len(pageRecords) < PageSize {
			break
		}

		if page < MaxPages {
			if !onProgress(len(accumulated)) {
				return nil, context.Canceled
			}
		}
	}

	return accumulated, nil
}
