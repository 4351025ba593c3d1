package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/EO-DataHub/eodhp-crm-console/models"
)

// Client is a client for interacting with the CRM REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// HTTPError is returned for any response outside the 2xx range.
type HTTPError struct {
	Message string
	Status  int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewClient creates a new instance of Client. A zero timeout means requests
// are never cut short by the client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Helper function for making HTTP requests to the CRM API. An empty token
// sends no Authorization header.
func (c *Client) makeRequest(ctx context.Context, method, path, token string, payload any) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respBody, resp.StatusCode, newHTTPError(resp, respBody)
	}

	return respBody, resp.StatusCode, nil
}

// newHTTPError prefers the message from the backend's error body and falls
// back to the status line.
func newHTTPError(resp *http.Response, body []byte) *HTTPError {
	var errBody models.ErrorResponse
	if err := json.Unmarshal(body, &errBody); err != nil || errBody.Message == "" {
		errBody.Message = resp.Status
	}
	return &HTTPError{Message: errBody.Message, Status: resp.StatusCode}
}

func decode[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("failed to decode response: %w", err)
	}
	return v, nil
}
