package payrail

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Fixed resource paths on the payments API.
const (
	EndpointTransactions = "/transaction"
	EndpointRefunds      = "/refund"
	EndpointPayouts      = "/payout"
	EndpointDisputes     = "/dispute"
)

// ResourceEndpoint maps a resource name to its API path.
func ResourceEndpoint(resource string) (string, bool) {
	switch resource {
	case "transaction", "transactions":
		return EndpointTransactions, true
	case "refund", "refunds":
		return EndpointRefunds, true
	case "payout", "payouts":
		return EndpointPayouts, true
	case "dispute", "disputes":
		return EndpointDisputes, true
	default:
		return "", false
	}
}

// Record is the raw shape of a financial record as returned by the
// payments API. The four resources share the core fields; the optional
// fields are populated only for the resources that carry them
// (channel for transactions, type for refunds, category and resolution
// for disputes).
type Record struct {
	ID         int64     `json:"id"`
	Reference  string    `json:"reference,omitempty"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	Channel    string    `json:"channel,omitempty"`
	Type       string    `json:"type,omitempty"`
	Category   string    `json:"category,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
}

// listEnvelope is the wire envelope around list responses.
type listEnvelope struct {
	Status  bool     `json:"status"`
	Message string   `json:"message"`
	Data    []Record `json:"data"`
}

// ListRecords fetches one page of records from the given resource
// endpoint using the caller's token. The params must already carry the
// pagination fields; this method is a thin, typed wrapper over the wire
// contract and applies no paging policy of its own.
func (c *Client) ListRecords(ctx context.Context, endpoint, authToken string, params url.Values) ([]Record, error) {
	resp, err := c.Get(ctx, endpoint, WithBearerToken(authToken), WithQuery(params))
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := decodeJSON(resp, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	if !envelope.Status {
		return nil, fmt.Errorf("payments API rejected %s request: %s", endpoint, envelope.Message)
	}

	return envelope.Data, nil
}
