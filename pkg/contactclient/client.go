// Package contactclient is a small HTTP client for the contact API.
// It posts submissions as JSON and turns error bodies into *APIError.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yhteys/backend/internal/model"
)

// SubmitPath is the API route for new contact messages.
const SubmitPath = "/api/contact"

// APIError is a non-2xx answer from the contact API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("contact api: status %d: %s", e.StatusCode, e.Message)
}

// IsRejected reports whether err is a 400 from the API, meaning the input
// was refused and resending it unchanged will not help.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// Client posts contact submissions to a server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the server at baseURL (e.g. "http://localhost:8080").
// A nil httpClient gets a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Submit sends in to POST /api/contact. It returns nil on 201.
func (c *Client) Submit(ctx context.Context, in model.ContactInput) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SubmitPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contact api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var result struct {
		Error string `json:"error"`
	}
	// A body that is not JSON still yields an APIError with the status.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&result)
	return &APIError{StatusCode: resp.StatusCode, Message: result.Error}
}
