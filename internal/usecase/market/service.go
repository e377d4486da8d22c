// Package market extrapolates skill demand and salary from yearly history.
package market

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/ml/regression"
)

// Source reads the job market history.
type Source interface {
	Market(ctx context.Context) ([]catalog.MarketPoint, error)
}

const (
	// NoDataStatus is reported for skills absent from the history.
	NoDataStatus = "No historical data available"
	// ModelType names the estimator behind a forecast.
	ModelType = "Linear Regression"
)

// Forecast is the predicted market for one skill in one year.
type Forecast struct {
	Skill      string
	TargetYear int
	// HasData is false when the skill has no history; Status then says so
	// and every estimate is zero.
	HasData        bool
	Status         string
	DemandScore    int64
	SalaryEstimate int64
	GrowthPct      string
	ModelType      string
}

// Service answers job market questions.
type Service struct {
	source Source
}

// New creates the predictor.
func New(source Source) *Service {
	return &Service{source: source}
}

// Predict fits demand and salary trends for skill and evaluates them at targetYear.
func (s *Service) Predict(ctx context.Context, skill string, targetYear int) (Forecast, error) {
	points, err := s.source.Market(ctx)
	if err != nil {
		return Forecast{}, err
	}

	want := strings.ToLower(strings.TrimSpace(skill))
	var history []catalog.MarketPoint
	for _, p := range points {
		if want != "" && strings.ToLower(strings.TrimSpace(p.Skill)) == want {
			history = append(history, p)
		}
	}
	if len(history) == 0 {
		return Forecast{
			Skill:      skill,
			TargetYear: targetYear,
			Status:     NoDataStatus,
			GrowthPct:  "0%",
		}, nil
	}
	slices.SortStableFunc(history, func(a, b catalog.MarketPoint) int { return a.Year - b.Year })

	years := make([]float64, len(history))
	demand := make([]float64, len(history))
	salary := make([]float64, len(history))
	for i, p := range history {
		years[i], demand[i], salary[i] = float64(p.Year), p.DemandCount, p.AvgSalary
	}

	x := float64(targetYear)
	predDemand := int64(regression.Fit(years, demand).Predict(x))
	predSalary := int64(regression.Fit(years, salary).Predict(x))

	growth := 0.0
	if last := history[len(history)-1].DemandCount; last > 0 {
		growth = (float64(predDemand) - last) / last * 100
	}

	return Forecast{
		Skill:          skill,
		TargetYear:     targetYear,
		HasData:        true,
		DemandScore:    predDemand,
		SalaryEstimate: predSalary,
		GrowthPct:      fmt.Sprintf("%.1f%%", growth),
		ModelType:      ModelType,
	}, nil
}

// Skills lists tracked skills in first-seen order.
func (s *Service) Skills(ctx context.Context) ([]string, error) {
	points, err := s.source.Market(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(points))
	out := []string{}
	for _, p := range points {
		if _, ok := seen[p.Skill]; ok {
			continue
		}
		seen[p.Skill] = struct{}{}
		out = append(out, p.Skill)
	}
	return out, nil
}
