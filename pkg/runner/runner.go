package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ambench/pkg/automl"
	"ambench/pkg/core"
	"ambench/pkg/preprocess"
)

// Runner executes one classifier against one task and publishes the result.
// The tracking client carries the API key; nothing is set globally.
type Runner struct {
	Client core.TrackingClient
	Logger *zap.Logger
}

func New(client core.TrackingClient, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Client: client, Logger: logger}
}

// Preprocessor resolves a selector into a pipeline for a task. SelectorNone
// returns nil without touching the tracking service. SelectorDefault fetches
// the task's dataset and derives the categorical indicator, dropping the
// trailing label entry.
func (r *Runner) Preprocessor(ctx context.Context, taskID int64, sel preprocess.Selector) (preprocess.Pipeline, error) {
	if sel == preprocess.SelectorNone {
		return nil, nil
	}

	task, err := r.Client.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	dataset, err := r.Client.GetDataset(ctx, task.DatasetID)
	if err != nil {
		return nil, err
	}

	indicator := dataset.CategoricalIndicator()
	if len(indicator) > 0 {
		indicator = indicator[:len(indicator)-1] // drop the label column
	}
	return preprocess.Build(sel, indicator)
}

// RunJob runs a classifier against a task per the task's predefined split,
// publishes the run, and returns the run identifier and result URL. An
// unknown classifier name fails before any tracking-service call.
func (r *Runner) RunJob(ctx context.Context, clfName string, taskID int64, cfg automl.Config, preprocessorName string) (int64, string, error) {
	clf, err := automl.ParseClassifier(clfName)
	if err != nil {
		return 0, "", err
	}
	sel, err := preprocess.ParseSelector(preprocessorName)
	if err != nil {
		return 0, "", err
	}

	pipeline, err := r.Preprocessor(ctx, taskID, sel)
	if err != nil {
		return 0, "", err
	}
	wrapper, err := automl.New(clf, pipeline, cfg)
	if err != nil {
		return 0, "", err
	}

	task, err := r.Client.GetTask(ctx, taskID)
	if err != nil {
		return 0, "", err
	}
	dataset, err := r.Client.GetDataset(ctx, task.DatasetID)
	if err != nil {
		return 0, "", err
	}

	run, err := r.runOnSplit(ctx, wrapper, task, dataset)
	if err != nil {
		return 0, "", err
	}

	runID, err := r.Client.PublishRun(ctx, run)
	if err != nil {
		return 0, "", err
	}
	url := r.Client.RunURL(runID)

	r.Logger.Info("run published",
		zap.Int64("run_id", runID),
		zap.Int64("task_id", taskID),
		zap.String("classifier", wrapper.Name()),
		zap.Float64("accuracy", run.Accuracy),
		zap.String("url", url))
	return runID, url, nil
}

// runOnSplit trains on the predefined train split and predicts the test
// split.
func (r *Runner) runOnSplit(ctx context.Context, wrapper core.Wrapper, task core.Task, dataset core.Dataset) (core.Run, error) {
	X, y := dataset.Data()

	trainX, trainY, err := selectRows(X, y, task.Split.Train)
	if err != nil {
		return core.Run{}, fmt.Errorf("runner: train split: %w", err)
	}
	testX, testY, err := selectRows(X, y, task.Split.Test)
	if err != nil {
		return core.Run{}, fmt.Errorf("runner: test split: %w", err)
	}

	if err := wrapper.Fit(ctx, trainX, trainY); err != nil {
		return core.Run{}, err
	}
	predictions, err := wrapper.Predict(ctx, testX)
	if err != nil {
		return core.Run{}, err
	}

	return core.Run{
		TaskID:      task.ID,
		FlowName:    wrapper.Name(),
		Predictions: predictions,
		Accuracy:    accuracy(predictions, testY),
	}, nil
}

func selectRows(X [][]float64, y []float64, indices []int) ([][]float64, []float64, error) {
	outX := make([][]float64, 0, len(indices))
	outY := make([]float64, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(X) {
			return nil, nil, fmt.Errorf("index %d out of range (%d rows)", i, len(X))
		}
		outX = append(outX, X[i])
		outY = append(outY, y[i])
	}
	return outX, outY, nil
}

func accuracy(predictions, labels []float64) float64 {
	if len(predictions) == 0 || len(predictions) != len(labels) {
		return 0
	}
	correct := 0
	for i, p := range predictions {
		if p == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(predictions))
}
