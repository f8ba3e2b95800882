package automl

import (
	"context"
	"errors"

	"ambench/pkg/preprocess"
)

const defaultTPOTBackend = "ambench-tpot"

// TPOTWrapper adapts the TPOT search backend to the fit/predict interface.
// Fit stages the training data; the backend search runs at predict time,
// since the search protocol takes train and test rows in one request.
type TPOTWrapper struct {
	Pipeline preprocess.Pipeline
	Config   TPOTConfig
	Wrapper  WrapperConfig
	Backend  Backend

	trainX [][]float64
	trainY []float64
}

func (w *TPOTWrapper) Name() string { return "tpot" }

func (w *TPOTWrapper) Fit(ctx context.Context, X [][]float64, y []float64) error {
	if len(X) != len(y) {
		return errors.New("tpot: feature and label row counts differ")
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

func (w *TPOTWrapper) Predict(ctx context.Context, X [][]float64) ([]float64, error) {
	if w.trainX == nil {
		return nil, errors.New("tpot: predict before fit")
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
			command = defaultTPOTBackend
		}
		backend = ExecBackend{Command: command}
	}

	resp, err := backend.Search(ctx, SearchRequest{
		Options: map[string]any{
			"generations":     w.Config.Generations,
			"population_size": w.Config.PopulationSize,
			"verbosity":       w.Config.Verbosity,
			"refit":           w.Wrapper.Refit,
			"verbose":         w.Wrapper.Verbose,
			"random_state":    w.Wrapper.RandomState,
		},
		TrainX: w.trainX,
		TrainY: w.trainY,
		TestX:  X,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Predictions) != len(X) {
		return nil, errors.New("tpot: backend returned wrong number of predictions")
	}
	return resp.Predictions, nil
}
