package engine

import (
	"ModelFlow/config"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client calls the workflow engine over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// APIError represents a workflow engine error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("engine: %s (status %d)", e.Message, e.Status)
}

// NewClient constructs a workflow engine client from config.
func NewClient() *Client {
	return &Client{
		baseURL:    strings.TrimRight(config.AppConfig.EngineAPIURL, "/"),
		apiKey:     config.AppConfig.EngineAPIKey,
		httpClient: &http.Client{Timeout: config.AppConfig.ExternalHTTPTimeout},
	}
}

// Configured reports whether an engine endpoint is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// ImportWorkflow pushes a workflow definition into the engine and returns the
// engine-side workflow id.
func (c *Client) ImportWorkflow(ctx context.Context, workflow string) (string, error) {
	var payload json.RawMessage = []byte(workflow)
	var result struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/workflows", payload, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", &APIError{Status: http.StatusBadGateway, Message: "import returned no workflow id"}
	}
	return result.ID, nil
}

// SetActive activates or deactivates a workflow in the engine.
func (c *Client) SetActive(ctx context.Context, workflowID string, active bool) error {
	action := "activate"
	if !active {
		action = "deactivate"
	}
	path := fmt.Sprintf("/api/v1/workflows/%s/%s", workflowID, action)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// Run executes a workflow with the given inputs and returns the raw result.
func (c *Client) Run(ctx context.Context, workflowID string, inputs map[string]interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]interface{}{"data": inputs})
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/api/v1/workflows/%s/run", workflowID)
	var result json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-N8N-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Message
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
