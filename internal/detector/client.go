// Package detector is a client for the remote ingredient-detection service.
// The service takes a raw ingredient list and returns the additives and
// ultra-processed ingredients it recognized; scoring happens locally.
package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the detector's inference endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a detector client. timeout bounds each HTTP attempt;
// zero means 30 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Detect submits an ingredient list and returns the detection result.
// Transient failures (network errors, 5xx) are retried once; 4xx responses
// are returned immediately.
func (c *Client) Detect(ctx context.Context, ingredients []string) (*Detection, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(500 * time.Millisecond):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		detection, retryable, err := c.detectOnce(ctx, ingredients)
		if err == nil {
			return detection, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("detector unavailable: %w", lastErr)
}

func (c *Client) detectOnce(ctx context.Context, ingredients []string) (*Detection, bool, error) {
	jsonBody, err := json.Marshal(DetectRequest{Ingredients: ingredients})
	if err != nil {
		return nil, false, fmt.Errorf("marshal detect request: %w", err)
	}

	url := c.baseURL + "/v1/detect"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("post detect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, true, fmt.Errorf("detector error %d: %s", resp.StatusCode, string(respBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("detector error %d: %s", resp.StatusCode, string(respBody))
	}

	var detection Detection
	if err := json.NewDecoder(resp.Body).Decode(&detection); err != nil {
		return nil, false, fmt.Errorf("decode detection: %w", err)
	}
	return &detection, false, nil
}
