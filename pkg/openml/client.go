package openml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"ambench/pkg/core"
)

const defaultServer = "https://www.openml.org/api/v1"

// Client is an explicit session object for the tracking service. The API key
// lives here and is never set on shared global state.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// New returns a client for the given server and key. An empty server falls
// back to the public default.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultServer
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: http.DefaultClient,
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		Backoff:    500 * time.Millisecond,
	}
}

// NewFromEnv builds a client from OPENML_SERVER and OPENML_APIKEY. An
// explicit key argument takes precedence over the environment.
func NewFromEnv(apiKey string) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("OPENML_APIKEY")
	}
	return New(os.Getenv("OPENML_SERVER"), apiKey)
}

// GetStudy resolves a study identifier into its ordered task list.
func (c *Client) GetStudy(ctx context.Context, studyID int64) (core.Study, error) {
	var payload struct {
		Study core.Study `json:"study"`
	}
	if err := c.get(ctx, fmt.Sprintf("/json/study/%d", studyID), &payload); err != nil {
		return core.Study{}, fmt.Errorf("openml: get study %d: %w", studyID, err)
	}
	return payload.Study, nil
}

// GetTask retrieves a task by identifier.
func (c *Client) GetTask(ctx context.Context, taskID int64) (core.Task, error) {
	var payload struct {
		Task core.Task `json:"task"`
	}
	if err := c.get(ctx, fmt.Sprintf("/json/task/%d", taskID), &payload); err != nil {
		return core.Task{}, fmt.Errorf("openml: get task %d: %w", taskID, err)
	}
	return payload.Task, nil
}

// GetDataset retrieves a dataset, including its rows and per-feature
// categorical indicator.
func (c *Client) GetDataset(ctx context.Context, datasetID int64) (core.Dataset, error) {
	var payload struct {
		Dataset core.Dataset `json:"dataset"`
	}
	if err := c.get(ctx, fmt.Sprintf("/json/data/%d", datasetID), &payload); err != nil {
		return core.Dataset{}, fmt.Errorf("openml: get dataset %d: %w", datasetID, err)
	}
	return payload.Dataset, nil
}

// PublishRun uploads a run and returns the identifier assigned by the server.
func (c *Client) PublishRun(ctx context.Context, run core.Run) (int64, error) {
	if c.APIKey == "" {
		return 0, errors.New("openml: an API key is required to publish runs")
	}
	body, err := json.Marshal(run)
	if err != nil {
		return 0, err
	}
	var payload struct {
		Run struct {
			ID int64 `json:"id"`
		} `json:"run"`
	}
	if err := c.do(ctx, http.MethodPost, "/json/run", body, &payload); err != nil {
		return 0, fmt.Errorf("openml: publish run: %w", err)
	}
	return payload.Run.ID, nil
}

// RunURL builds the result URL for a published run.
func (c *Client) RunURL(runID int64) string {
	return fmt.Sprintf("%s/json/run/%d", c.BaseURL, runID)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRetries := c.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := c.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		err := c.attempt(attemptCtx, httpClient, method, path, body, out)
		cancel()
		if err == nil {
			return nil
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
		var status *statusError
		if errors.As(err, &status) && status.Code < http.StatusInternalServerError {
			return err
		}
		lastErr = err

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff * time.Duration(attempt+1)):
			}
		}
	}
	return fmt.Errorf("request failed after retries: %w", lastErr)
}

func (c *Client) attempt(ctx context.Context, httpClient *http.Client, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		q := req.URL.Query()
		q.Set("api_key", c.APIKey)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Body)
}
