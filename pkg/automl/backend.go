package automl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// SearchRequest is the payload handed to an AutoML backend: the search
// options plus the training data and the rows to predict.
type SearchRequest struct {
	Options map[string]any `json:"options"`
	TrainX  [][]float64    `json:"train_x"`
	TrainY  []float64      `json:"train_y"`
	TestX   [][]float64    `json:"test_x"`
}

// SearchResponse carries the backend's predictions for the test rows.
type SearchResponse struct {
	Predictions []float64 `json:"predictions"`
	Error       string    `json:"error,omitempty"`
}

// Backend runs the actual AutoML search. Backend internals are external
// collaborators; this package only speaks the request/response protocol.
type Backend interface {
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
}

// ExecBackend delegates the search to an external command: the request goes
// to its stdin as JSON, the response comes back on stdout.
type ExecBackend struct {
	Command string
	Args    []string
}

func (b ExecBackend) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	if b.Command == "" {
		return SearchResponse{}, fmt.Errorf("automl: no backend command configured")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return SearchResponse{}, err
	}

	cmd := exec.CommandContext(ctx, b.Command, b.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return SearchResponse{}, fmt.Errorf("automl: backend %s: %w: %s", b.Command, err, msg)
		}
		return SearchResponse{}, fmt.Errorf("automl: backend %s: %w", b.Command, err)
	}

	var resp SearchResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return SearchResponse{}, fmt.Errorf("automl: backend %s: bad response: %w", b.Command, err)
	}
	if resp.Error != "" {
		return SearchResponse{}, fmt.Errorf("automl: backend %s: %s", b.Command, resp.Error)
	}
	return resp, nil
}
