package core

import "math"

// Feature describes one column of a dataset.
type Feature struct {
	Name        string `json:"name"`
	Categorical bool   `json:"categorical"`
}

// Dataset is the tabular data behind a task. Rows are row-major; categorical
// values are stored as category indexes and missing values as NaN. The final
// feature is the label.
type Dataset struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Features []Feature   `json:"features"`
	Rows     [][]float64 `json:"rows"`
}

// CategoricalIndicator returns the per-feature categorical flags, label
// column included.
func (d Dataset) CategoricalIndicator() []bool {
	indicator := make([]bool, len(d.Features))
	for i, f := range d.Features {
		indicator[i] = f.Categorical
	}
	return indicator
}

// Data splits the rows into a feature matrix and a label vector, with the
// label taken from the trailing column.
func (d Dataset) Data() (X [][]float64, y []float64) {
	X = make([][]float64, len(d.Rows))
	y = make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		if len(row) == 0 {
			X[i] = nil
			y[i] = math.NaN()
			continue
		}
		X[i] = row[:len(row)-1]
		y[i] = row[len(row)-1]
	}
	return X, y
}
