package webform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/linearmarketingsolutions/website/internal/contact"
)

// DefaultEndpoint is the same-origin path of the submission endpoint.
const DefaultEndpoint = "/api/contact"

const maxReplyBody = 64 << 10

// HTTPTransport posts submissions as JSON. Under js/wasm net/http is backed by
// the browser's fetch.
type HTTPTransport struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPTransport creates a transport for endpoint, defaulting to
// DefaultEndpoint.
func NewHTTPTransport(endpoint string, client *http.Client) *HTTPTransport {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{Endpoint: endpoint, Client: client}
}

// Post sends sub and decodes the reply whatever the HTTP status is; the
// endpoint reports failures in the body.
func (t *HTTPTransport) Post(ctx context.Context, sub contact.Submission) (contact.Response, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return contact.Response{}, fmt.Errorf("webform: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return contact.Response{}, fmt.Errorf("webform: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.Client.Do(req)
	if err != nil {
		return contact.Response{}, fmt.Errorf("webform: post: %w", err)
	}
	defer res.Body.Close()

	var reply contact.Response
	if err := json.NewDecoder(io.LimitReader(res.Body, maxReplyBody)).Decode(&reply); err != nil {
		return contact.Response{}, fmt.Errorf("webform: decode reply (status %d): %w", res.StatusCode, err)
	}
	return reply, nil
}
