package preprocess

import "errors"

// ErrUnknownPreprocessor is returned when a preprocessor name is not one of
// the closed set of selectors.
var ErrUnknownPreprocessor = errors.New("preprocess: unknown preprocessor")
