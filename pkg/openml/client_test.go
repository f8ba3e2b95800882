package openml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ambench/pkg/core"
)

func TestGetStudy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/json/study/14", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		json.NewEncoder(w).Encode(map[string]any{
			"study": map[string]any{"id": 14, "name": "OpenML100", "tasks": []int64{3, 6, 11}},
		})
	}))
	defer server.Close()

	client := New(server.URL, "")
	study, err := client.GetStudy(context.Background(), 14)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 6, 11}, study.Tasks)
}

func TestGetStudyNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "study unknown", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "")
	_, err := client.GetStudy(context.Background(), 99)
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestPublishRunRequiresKey(t *testing.T) {
	client := New("http://example", "")
	_, err := client.PublishRun(context.Background(), core.Run{})
	require.Error(t, err)
}

func TestPublishRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/json/run", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("api_key"))

		var run core.Run
		require.NoError(t, json.NewDecoder(r.Body).Decode(&run))
		require.Equal(t, int64(42), run.TaskID)

		json.NewEncoder(w).Encode(map[string]any{"run": map[string]any{"id": 123}})
	}))
	defer server.Close()

	client := New(server.URL, "secret")
	runID, err := client.PublishRun(context.Background(), core.Run{TaskID: 42, FlowName: "tpot"})
	require.NoError(t, err)
	require.Equal(t, int64(123), runID)
	require.Equal(t, server.URL+"/json/run/123", client.RunURL(runID))
}

func TestRetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"task": map[string]any{"id": 3, "dataset_id": 7},
		})
	}))
	defer server.Close()

	client := New(server.URL, "")
	client.Backoff = time.Millisecond
	task, err := client.GetTask(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, int64(7), task.DatasetID)
	require.Equal(t, int32(2), attempts.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := New(server.URL, "")
	client.Backoff = time.Millisecond
	_, err := client.GetTask(context.Background(), 3)
	require.Error(t, err)
	require.Equal(t, int32(1), attempts.Load())
}
