package runner

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ambench/pkg/automl"
	"ambench/pkg/core"
	"ambench/pkg/preprocess"
)

type fakeClient struct {
	task    core.Task
	dataset core.Dataset
	runID   int64
	calls   int
}

func (c *fakeClient) GetStudy(_ context.Context, _ int64) (core.Study, error) {
	c.calls++
	return core.Study{}, nil
}

func (c *fakeClient) GetTask(_ context.Context, _ int64) (core.Task, error) {
	c.calls++
	return c.task, nil
}

func (c *fakeClient) GetDataset(_ context.Context, _ int64) (core.Dataset, error) {
	c.calls++
	return c.dataset, nil
}

func (c *fakeClient) PublishRun(_ context.Context, _ core.Run) (int64, error) {
	c.calls++
	return c.runID, nil
}

func (c *fakeClient) RunURL(runID int64) string {
	return fmt.Sprintf("http://example/json/run/%d", runID)
}

func testClient() *fakeClient {
	nan := math.NaN()
	return &fakeClient{
		task: core.Task{
			ID:        42,
			DatasetID: 7,
			Split: core.Split{
				Train: []int{0, 1, 2, 3},
				Test:  []int{4, 5},
			},
		},
		dataset: core.Dataset{
			ID: 7,
			Features: []core.Feature{
				{Name: "color", Categorical: true},
				{Name: "width", Categorical: false},
				{Name: "class", Categorical: true},
			},
			Rows: [][]float64{
				{0, 1.0, 0},
				{1, 2.0, 1},
				{0, nan, 0},
				{1, 4.0, 1},
				{0, 5.0, 0},
				{2, 6.0, 1},
			},
		},
		runID: 123,
	}
}

func TestRunJobUnknownClassifier(t *testing.T) {
	client := testClient()
	r := New(client, nil)

	_, _, err := r.RunJob(context.Background(), "other", 42, automl.DefaultConfig(), "default")
	require.ErrorIs(t, err, automl.ErrUnknownClassifier)
	require.Equal(t, 0, client.calls)
}

func TestRunJobUnknownPreprocessor(t *testing.T) {
	client := testClient()
	r := New(client, nil)

	_, _, err := r.RunJob(context.Background(), "tpot", 42, automl.DefaultConfig(), "bogus")
	require.ErrorIs(t, err, preprocess.ErrUnknownPreprocessor)
	require.Equal(t, 0, client.calls)
}

func TestPreprocessorNone(t *testing.T) {
	client := testClient()
	r := New(client, nil)

	pipeline, err := r.Preprocessor(context.Background(), 42, preprocess.SelectorNone)
	require.NoError(t, err)
	require.Nil(t, pipeline)
	require.Equal(t, 0, client.calls)
}

func TestPreprocessorDefaultDropsLabel(t *testing.T) {
	client := testClient()
	r := New(client, nil)

	pipeline, err := r.Preprocessor(context.Background(), 42, preprocess.SelectorDefault)
	require.NoError(t, err)
	require.NotNil(t, pipeline)

	// The dataset has three features; the pipeline covers the two
	// non-label columns, so two-column rows fit and three-column rows
	// do not.
	_, err = pipeline.FitTransform([][]float64{{0, 1.0}, {1, 2.0}})
	require.NoError(t, err)

	fresh, err := r.Preprocessor(context.Background(), 42, preprocess.SelectorDefault)
	require.NoError(t, err)
	_, err = fresh.FitTransform([][]float64{{0, 1.0, 0}})
	require.Error(t, err)
}

func TestRunJob(t *testing.T) {
	backend := filepath.Join(t.TempDir(), "backend.sh")
	script := "#!/bin/sh\ncat > /dev/null\necho '{\"predictions\": [0, 1]}'\n"
	require.NoError(t, os.WriteFile(backend, []byte(script), 0755))

	cfg := automl.DefaultConfig()
	cfg.Wrapper.BackendCommand = backend

	client := testClient()
	r := New(client, nil)

	runID, url, err := r.RunJob(context.Background(), "tpot", 42, cfg, "default")
	require.NoError(t, err)
	require.Equal(t, int64(123), runID)
	require.Equal(t, "http://example/json/run/123", url)
}

func TestRunJobSplitOutOfRange(t *testing.T) {
	client := testClient()
	client.task.Split.Test = []int{99}
	r := New(client, nil)

	_, _, err := r.RunJob(context.Background(), "tpot", 42, automl.DefaultConfig(), "none")
	require.Error(t, err)
}
