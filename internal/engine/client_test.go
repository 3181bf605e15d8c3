package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	return &Client{
		baseURL:    serverURL,
		apiKey:     "test-key",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestImportWorkflow(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-N8N-API-KEY")
		assert.Equal(t, "/api/v1/workflows", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "wf-123"})
	}))
	defer server.Close()

	id, err := testClient(server.URL).ImportWorkflow(context.Background(), `{"nodes":[]}`)
	require.NoError(t, err)
	assert.Equal(t, "wf-123", id)
	assert.Equal(t, "test-key", gotKey)
}

func TestImportWorkflowMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	_, err := testClient(server.URL).ImportWorkflow(context.Background(), `{"nodes":[]}`)
	require.Error(t, err)
}

func TestSetActive(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testClient(server.URL)
	require.NoError(t, client.SetActive(context.Background(), "wf-123", true))
	assert.Equal(t, "/api/v1/workflows/wf-123/activate", gotPath)

	require.NoError(t, client.SetActive(context.Background(), "wf-123", false))
	assert.Equal(t, "/api/v1/workflows/wf-123/deactivate", gotPath)
}

func TestRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "data")
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "done"})
	}))
	defer server.Close()

	result, err := testClient(server.URL).Run(context.Background(), "wf-123", map[string]interface{}{"CITY": "Berlin"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"done"}`, string(result))
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid api key"})
	}))
	defer server.Close()

	err := testClient(server.URL).SetActive(context.Background(), "wf-123", true)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "invalid api key")
}
