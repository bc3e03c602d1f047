package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"FundingIntel/backend/go/internal/config"
	"FundingIntel/backend/go/pkg/circuitbreaker"
)

// APIError is a decoded error envelope returned by the funding service.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Client is a JSON HTTP client for the funding service with optional
// circuit breaking.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.Breaker
}

// NewClient creates a Client for baseURL. Server errors (>= 500) count as
// breaker failures when the breaker is enabled.
func NewClient(baseURL string, cfg config.CircuitBreakerConfig) (*Client, error) {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	if !cfg.Enabled {
		return c, nil
	}
	breaker, err := NewBreaker("fundctl", cfg, nil)
	if err != nil {
		return nil, err
	}
	c.breaker = breaker
	return c, nil
}

// NewClientWithBreaker creates a Client guarded by an existing breaker.
// A nil breaker disables circuit breaking.
func NewClientWithBreaker(baseURL string, breaker *circuitbreaker.Breaker) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker:    breaker,
	}
}

// Do executes an HTTP request with circuit breaker protection.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.httpClient.Do(req)
	}
	return circuitbreaker.Do(c.breaker, func() (*http.Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("server error: received status code %d", resp.StatusCode)
		}
		return resp, nil
	})
}

// GetJSON sends a GET request and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON sends in as a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

// PutJSON sends in as a JSON body with PUT and decodes the response into out.
func (c *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, in, out)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// UploadFile posts data as a multipart form file under field and decodes
// the JSON response into out.
func (c *Client) UploadFile(ctx context.Context, path, field, filename string, data []byte, out interface{}) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.send(req, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var envelope struct {
		Error APIError `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error.Message == "" {
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	envelope.Error.Status = resp.StatusCode
	return &envelope.Error
}
