package careersetu

import (
	"context"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/domain/recommendation"
	marketuc "github.com/kailas-cloud/careersetu/internal/usecase/market"
	progressionuc "github.com/kailas-cloud/careersetu/internal/usecase/progression"
	recommenduc "github.com/kailas-cloud/careersetu/internal/usecase/recommend"
	skillgapuc "github.com/kailas-cloud/careersetu/internal/usecase/skillgap"
)

// --- recommenderUseCase mock ---

type mockRecommenderUC struct {
	recommendFn func(ctx context.Context, q recommendation.Query) ([]recommendation.Recommendation, error)
	trainFn     func(ctx context.Context) (int, error)
	status      recommenduc.Status
}

func (m *mockRecommenderUC) Recommend(
	ctx context.Context, q recommendation.Query,
) ([]recommendation.Recommendation, error) {
	return m.recommendFn(ctx, q)
}

func (m *mockRecommenderUC) Train(ctx context.Context) (int, error) {
	return m.trainFn(ctx)
}

func (m *mockRecommenderUC) Status() recommenduc.Status { return m.status }

// --- skillGapUseCase mock ---

type mockSkillGapUC struct {
	analyzeFn func(ctx context.Context, skills []string, role string) (skillgapuc.Analysis, error)
	rebuildFn func(ctx context.Context) (int, error)
	rolesFn   func(ctx context.Context) ([]catalog.JobRole, error)
}

func (m *mockSkillGapUC) Analyze(ctx context.Context, skills []string, role string) (skillgapuc.Analysis, error) {
	return m.analyzeFn(ctx, skills, role)
}

func (m *mockSkillGapUC) Rebuild(ctx context.Context) (int, error) {
	return m.rebuildFn(ctx)
}

func (m *mockSkillGapUC) Roles(ctx context.Context) ([]catalog.JobRole, error) {
	return m.rolesFn(ctx)
}

// --- progressionUseCase mock ---

type mockProgressionUC struct {
	checkFn func(ctx context.Context, current int, skills []string) (progressionuc.Progress, error)
}

func (m *mockProgressionUC) Check(ctx context.Context, current int, skills []string) (progressionuc.Progress, error) {
	return m.checkFn(ctx, current, skills)
}

// --- marketUseCase mock ---

type mockMarketUC struct {
	predictFn func(ctx context.Context, skill string, year int) (marketuc.Forecast, error)
	skillsFn  func(ctx context.Context) ([]string, error)
}

func (m *mockMarketUC) Predict(ctx context.Context, skill string, year int) (marketuc.Forecast, error) {
	return m.predictFn(ctx, skill, year)
}

func (m *mockMarketUC) Skills(ctx context.Context) ([]string, error) {
	return m.skillsFn(ctx)
}
