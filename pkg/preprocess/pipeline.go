package preprocess

import (
	"fmt"
	"strings"
)

// Pipeline is a fit-once data transformation applied before model fitting.
type Pipeline interface {
	Name() string
	FitTransform(X [][]float64) ([][]float64, error)
	Transform(X [][]float64) ([][]float64, error)
}

// Selector is the closed set of preprocessor choices.
type Selector int

const (
	// SelectorNone disables preprocessing entirely.
	SelectorNone Selector = iota
	// SelectorDefault is the stock impute-then-encode pipeline.
	SelectorDefault
)

// ParseSelector maps a name to a Selector. An empty name or "none" selects no
// preprocessing; anything other than "default" is an error.
func ParseSelector(name string) (Selector, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return SelectorNone, nil
	case "default":
		return SelectorDefault, nil
	default:
		return SelectorNone, fmt.Errorf("%w: %q", ErrUnknownPreprocessor, name)
	}
}

func (s Selector) String() string {
	switch s {
	case SelectorNone:
		return "none"
	case SelectorDefault:
		return "default"
	default:
		return fmt.Sprintf("selector(%d)", int(s))
	}
}

// Build constructs the pipeline for a selector. The categorical indicator
// must already have the trailing label entry dropped. SelectorNone yields a
// nil pipeline.
func Build(s Selector, categorical []bool) (Pipeline, error) {
	switch s {
	case SelectorNone:
		return nil, nil
	case SelectorDefault:
		return &chain{
			name: "default",
			stages: []Pipeline{
				&ConditionalImputer{Categorical: categorical},
				&OneHotEncoder{Categorical: categorical},
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreprocessor, s)
	}
}

type chain struct {
	name   string
	stages []Pipeline
}

func (c *chain) Name() string { return c.name }

func (c *chain) FitTransform(X [][]float64) ([][]float64, error) {
	var err error
	for _, stage := range c.stages {
		X, err = stage.FitTransform(X)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}
	return X, nil
}

func (c *chain) Transform(X [][]float64) ([][]float64, error) {
	var err error
	for _, stage := range c.stages {
		X, err = stage.Transform(X)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}
	return X, nil
}
