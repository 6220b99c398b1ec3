package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/settlement-service/pkg/logger"
)

// VerifyResult is the gateway's answer to an invoice lookup. Only these
// three fields are contractual; anything else the gateway sends is ignored.
type VerifyResult struct {
	Status       string `json:"status"`
	InvoiceState string `json:"invoice_state"`
	Message      string `json:"message"`
}

// Confirmed reports whether the gateway considers the invoice paid. The
// order's own status may lag behind this; callers schedule a delayed
// re-read instead of trusting local state.
func (r *VerifyResult) Confirmed() bool {
	return r.Status == "processed" || r.InvoiceState == "payed"
}

var ErrInvoiceNotFound = errors.New("invoice not registered with gateway")

// Client talks to the payment gateway's verification endpoint. A request
// either resolves within the configured timeout or fails once; transport
// failures are never retried automatically, the user retries by hand.
type Client struct {
	client *http.Client
	apiURL string
}

func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
		apiURL: apiURL,
	}
}

func (c *Client) VerifyPayment(ctx context.Context, paymentID string) (*VerifyResult, error) {
	maxAttempts := 3

	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/api/invoices/%s", c.apiURL, paymentID), nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			logger.Log.Error(err.Error())
			return nil, fmt.Errorf("gateway request failed: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			// the one retried case: the gateway told us when to come back
			retryAfter := time.Second
			if v := resp.Header.Get("Retry-After"); v != "" {
				if secs, err := strconv.Atoi(v); err == nil {
					retryAfter = time.Duration(secs) * time.Second
				}
			}
			resp.Body.Close()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryAfter):
			}
			continue
		}

		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusNoContent, http.StatusNotFound:
			return nil, ErrInvoiceNotFound
		case http.StatusOK:
			var result VerifyResult
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				logger.Log.Error(err.Error())
				return nil, fmt.Errorf("gateway response malformed: %w", err)
			}
			return &result, nil
		default:
			return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
		}
	}

	return nil, errors.New("gateway rate limit not lifted")
}
