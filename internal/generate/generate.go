// Package generate calls the document generation endpoints. Newsletter and
// internal documents are produced by separate endpoints that share one
// request and response shape.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request is the payload sent to a generation endpoint.
type Request struct {
	Data     map[string]any `json:"data"`
	Config   map[string]any `json:"config,omitempty"`
	Template string         `json:"template,omitempty"`
}

type response struct {
	Success bool   `json:"success"`
	HTML    string `json:"html"`
	Error   string `json:"error"`
}

// Client talks to the generation service.
type Client struct {
	BaseURL    string
	Endpoints  map[string]string // document type -> path
	HTTPClient *http.Client
}

// NewClient returns a client with the default endpoint mapping.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Endpoints: map[string]string{
			"newsletter": "/generate-newsletter",
			"internal":   "/generate-internal",
		},
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate posts the request to the endpoint for the given document type and
// returns the generated HTML.
func (c *Client) Generate(ctx context.Context, documentType string, req Request) (string, error) {
	path, ok := c.Endpoints[documentType]
	if !ok {
		return "", fmt.Errorf("unknown document type %q", documentType)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("reading generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var result response
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "unbekannter Fehler"
		}
		return "", fmt.Errorf("generation failed: %s", msg)
	}
	return result.HTML, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
