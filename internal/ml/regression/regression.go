// Package regression fits simple ordinary-least-squares lines.
package regression

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Line is y = Intercept + Slope*x.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Fit fits y against x. With fewer than two distinct x values the line is
// flat at the mean of y; with no points it is the zero line.
func Fit(xs, ys []float64) Line {
	if len(xs) == 0 || len(xs) != len(ys) {
		return Line{}
	}
	if floats.Min(xs) == floats.Max(xs) {
		return Line{Intercept: stat.Mean(ys, nil)}
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Line{Slope: beta, Intercept: alpha}
}

// Predict evaluates the line at x.
func (l Line) Predict(x float64) float64 {
	return l.Intercept + l.Slope*x
}
