package automl

import (
	"context"
	"errors"
	"time"

	"ambench/pkg/preprocess"
)

const defaultAutoSklearnBackend = "ambench-autosklearn"

// AutoSklearnWrapper adapts the auto-sklearn search backend to the
// fit/predict interface, mirroring TPOTWrapper.
type AutoSklearnWrapper struct {
	Pipeline preprocess.Pipeline
	Config   AutoSklearnConfig
	Wrapper  WrapperConfig
	Backend  Backend

	trainX [][]float64
	trainY []float64
}

func (w *AutoSklearnWrapper) Name() string { return "autosklearn" }

func (w *AutoSklearnWrapper) Fit(ctx context.Context, X [][]float64, y []float64) error {
	if len(X) != len(y) {
		return errors.New("autosklearn: feature and label row counts differ")
	}
	if w.Pipeline != nil {
		var err error
		X, err = w.Pipeline.FitTransform(X)
		if err != nil {
			return err
		}
	}
	w.trainX = X
	w.trainY = y
	return nil
}

func (w *AutoSklearnWrapper) Predict(ctx context.Context, X [][]float64) ([]float64, error) {
	if w.trainX == nil {
		return nil, errors.New("autosklearn: predict before fit")
	}
	if w.Pipeline != nil {
		var err error
		X, err = w.Pipeline.Transform(X)
		if err != nil {
			return nil, err
		}
	}

	backend := w.Backend
	if backend == nil {
		command := w.Wrapper.BackendCommand
		if command == "" {
			command = defaultAutoSklearnBackend
		}
		backend = ExecBackend{Command: command}
	}

	// The search budget is a hard wall-clock limit, enforced here as well
	// as inside the backend.
	if w.Config.TimeLeftForThisTask > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(w.Config.TimeLeftForThisTask)*time.Second)
		defer cancel()
	}

	resp, err := backend.Search(ctx, SearchRequest{
		Options: map[string]any{
			"time_left_for_this_task": w.Config.TimeLeftForThisTask,
			"per_run_time_limit":      w.Config.PerRunTimeLimit,
			"ensemble_size":           w.Config.EnsembleSize,
			"refit":                   w.Wrapper.Refit,
			"verbose":                 w.Wrapper.Verbose,
			"random_state":            w.Wrapper.RandomState,
		},
		TrainX: w.trainX,
		TrainY: w.trainY,
		TestX:  X,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Predictions) != len(X) {
		return nil, errors.New("autosklearn: backend returned wrong number of predictions")
	}
	return resp.Predictions, nil
}
