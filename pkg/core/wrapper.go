package core

import "context"

// Wrapper adapts an AutoML search procedure to a fit/predict interface.
type Wrapper interface {
	Name() string
	Fit(ctx context.Context, X [][]float64, y []float64) error
	Predict(ctx context.Context, X [][]float64) ([]float64, error)
}
