package regression

import (
	"math"
	"testing"
)

func TestFit_ExactLine(t *testing.T) {
	l := Fit([]float64{2020, 2021, 2022, 2023}, []float64{100, 120, 140, 160})
	if math.Abs(l.Slope-20) > 1e-6 {
		t.Errorf("slope = %f, want 20", l.Slope)
	}
	if got := l.Predict(2026); math.Abs(got-220) > 1e-6 {
		t.Errorf("Predict(2026) = %f, want 220", got)
	}
}

func TestFit_SingleYearFlat(t *testing.T) {
	l := Fit([]float64{2023, 2023}, []float64{100, 200})
	if l.Slope != 0 {
		t.Errorf("slope = %f, want 0", l.Slope)
	}
	if got := l.Predict(2030); got != 150 {
		t.Errorf("Predict = %f, want mean 150", got)
	}
}

func TestFit_Empty(t *testing.T) {
	if l := Fit(nil, nil); l != (Line{}) {
		t.Errorf("Fit(nil) = %+v, want zero line", l)
	}
	if l := Fit([]float64{1}, []float64{1, 2}); l != (Line{}) {
		t.Errorf("mismatched lengths = %+v, want zero line", l)
	}
}
