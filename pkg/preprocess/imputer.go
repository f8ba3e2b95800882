package preprocess

import (
	"errors"
	"fmt"
	"math"
)

// ConditionalImputer fills missing values (NaN) per column: numeric columns
// with the column mean, categorical columns with the most frequent category.
type ConditionalImputer struct {
	Categorical []bool

	fill   []float64
	fitted bool
}

func (im *ConditionalImputer) Name() string { return "conditional-imputer" }

// FitTransform learns a fill value per column from X and applies it.
func (im *ConditionalImputer) FitTransform(X [][]float64) ([][]float64, error) {
	if len(X) == 0 {
		return nil, errors.New("no rows to fit on")
	}
	cols := len(X[0])
	if cols != len(im.Categorical) {
		return nil, fmt.Errorf("have %d columns, indicator covers %d", cols, len(im.Categorical))
	}

	im.fill = make([]float64, cols)
	for col := 0; col < cols; col++ {
		if im.Categorical[col] {
			im.fill[col] = mostFrequent(X, col)
		} else {
			im.fill[col] = columnMean(X, col)
		}
	}
	im.fitted = true
	return im.Transform(X)
}

// Transform replaces NaN entries with the learned fill values.
func (im *ConditionalImputer) Transform(X [][]float64) ([][]float64, error) {
	if !im.fitted {
		return nil, errors.New("transform before fit")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(im.fill) {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), len(im.fill))
		}
		outRow := make([]float64, len(row))
		for col, v := range row {
			if math.IsNaN(v) {
				v = im.fill[col]
			}
			outRow[col] = v
		}
		out[i] = outRow
	}
	return out, nil
}

func columnMean(X [][]float64, col int) float64 {
	var sum float64
	var n int
	for _, row := range X {
		if v := row[col]; !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func mostFrequent(X [][]float64, col int) float64 {
	counts := make(map[float64]int)
	for _, row := range X {
		if v := row[col]; !math.IsNaN(v) {
			counts[v]++
		}
	}
	var best float64
	bestCount := -1
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v < best) {
			best = v
			bestCount = count
		}
	}
	if bestCount < 0 {
		return 0
	}
	return best
}
