package automl

import (
	"errors"
	"fmt"
	"strings"

	"ambench/pkg/core"
	"ambench/pkg/preprocess"
)

// Classifier is the closed set of supported AutoML wrappers.
type Classifier int

const (
	ClassifierTPOT Classifier = iota
	ClassifierAutoSklearn
)

// ErrUnknownClassifier is returned when a classifier name is not one of the
// supported set.
var ErrUnknownClassifier = errors.New("automl: unknown classifier")

// Classifiers lists every supported classifier name.
func Classifiers() []string {
	return []string{ClassifierTPOT.String(), ClassifierAutoSklearn.String()}
}

// ParseClassifier maps a name to a Classifier. Anything other than "tpot" or
// "autosklearn" is an error.
func ParseClassifier(name string) (Classifier, error) {
	switch strings.ToLower(name) {
	case "tpot":
		return ClassifierTPOT, nil
	case "autosklearn":
		return ClassifierAutoSklearn, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownClassifier, name)
	}
}

func (c Classifier) String() string {
	switch c {
	case ClassifierTPOT:
		return "tpot"
	case ClassifierAutoSklearn:
		return "autosklearn"
	default:
		return fmt.Sprintf("classifier(%d)", int(c))
	}
}

// New constructs the wrapper for a classifier, with an optional preprocessing
// pipeline. The switch is exhaustive over the Classifier set.
func New(clf Classifier, pipeline preprocess.Pipeline, cfg Config) (core.Wrapper, error) {
	switch clf {
	case ClassifierTPOT:
		return &TPOTWrapper{
			Pipeline: pipeline,
			Config:   cfg.TPOT,
			Wrapper:  cfg.Wrapper,
		}, nil
	case ClassifierAutoSklearn:
		return &AutoSklearnWrapper{
			Pipeline: pipeline,
			Config:   cfg.AutoSklearn,
			Wrapper:  cfg.Wrapper,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownClassifier, clf)
	}
}
