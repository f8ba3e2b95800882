package preprocess

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// OneHotEncoder expands categorical columns into one indicator column per
// category seen at fit time. Numeric columns pass through unchanged. A
// category unseen at fit time encodes as all-zeros at transform time.
type OneHotEncoder struct {
	Categorical []bool

	categories [][]float64
	fitted     bool
}

func (enc *OneHotEncoder) Name() string { return "one-hot-encoder" }

// FitTransform records the category set of every categorical column and
// encodes X.
func (enc *OneHotEncoder) FitTransform(X [][]float64) ([][]float64, error) {
	if len(X) == 0 {
		return nil, errors.New("no rows to fit on")
	}
	cols := len(X[0])
	if cols != len(enc.Categorical) {
		return nil, fmt.Errorf("have %d columns, indicator covers %d", cols, len(enc.Categorical))
	}

	enc.categories = make([][]float64, cols)
	for col := 0; col < cols; col++ {
		if !enc.Categorical[col] {
			continue
		}
		seen := make(map[float64]struct{})
		for _, row := range X {
			if v := row[col]; !math.IsNaN(v) {
				seen[v] = struct{}{}
			}
		}
		cats := make([]float64, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Float64s(cats)
		enc.categories[col] = cats
	}
	enc.fitted = true
	return enc.Transform(X)
}

// Transform encodes X using the fitted category sets.
func (enc *OneHotEncoder) Transform(X [][]float64) ([][]float64, error) {
	if !enc.fitted {
		return nil, errors.New("transform before fit")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(enc.Categorical) {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), len(enc.Categorical))
		}
		outRow := make([]float64, 0, enc.outputWidth())
		for col, v := range row {
			if !enc.Categorical[col] {
				outRow = append(outRow, v)
				continue
			}
			for _, cat := range enc.categories[col] {
				if v == cat {
					outRow = append(outRow, 1)
				} else {
					outRow = append(outRow, 0)
				}
			}
		}
		out[i] = outRow
	}
	return out, nil
}

func (enc *OneHotEncoder) outputWidth() int {
	width := 0
	for col, categorical := range enc.Categorical {
		if categorical {
			width += len(enc.categories[col])
		} else {
			width++
		}
	}
	return width
}
