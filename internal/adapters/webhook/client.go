// Package webhook delivers classified entries to the remote web app
// endpoint and classifies each attempt's outcome.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"cliprelay/internal/domain"
	"cliprelay/internal/ports"
)

// deliveryTimeout bounds one POST, connection setup included.
const deliveryTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read back.
const maxResponseBytes = 1 << 20

// ackBody is the literal body the endpoint returns on success.
const ackBody = "OK"

// Client sends entries to a single endpoint. It performs no retries:
// each entry gets exactly one attempt.
type Client struct {
	endpoint string
	who      string
	creds    ports.CredentialSource // nil means unauthenticated delivery
	http     *http.Client
}

var _ ports.Deliverer = (*Client)(nil)

// NewClient creates a delivery client for endpoint. creds may be nil
// when the auth mode is none.
func NewClient(endpoint, who string, creds ports.CredentialSource) *Client {
	return &Client{
		endpoint: endpoint,
		who:      who,
		creds:    creds,
		http:     &http.Client{Timeout: deliveryTimeout},
	}
}

type payload struct {
	Type    string `json:"type"`
	Section string `json:"section"`
	Text    string `json:"text"`
	Who     string `json:"who"`
}

// Deliver posts the entry and interprets the response.
// Success requires both a 2xx status and a body exactly equal to "OK";
// anything else the server says is a rejection, never a crash.
func (c *Client) Deliver(ctx context.Context, entry domain.ClassifiedEntry) domain.Outcome {
	body, err := json.Marshal(payload{
		Type:    entry.Tag,
		Section: entry.Section,
		Text:    entry.Text,
		Who:     c.who,
	})
	if err != nil {
		return domain.TransportFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.TransportFailure(err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.creds != nil {
		token, err := c.creds.Token(ctx)
		if err != nil {
			// No network call without a token.
			return domain.AuthFailure(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.TransportFailure(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.TransportFailure(err)
	}
	text := strings.TrimSpace(string(raw))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && text == ackBody {
		return domain.Delivered()
	}
	return domain.Rejected(resp.StatusCode, text)
}
