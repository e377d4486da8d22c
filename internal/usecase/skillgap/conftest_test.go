package skillgap

import (
	"context"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/ml/forest"
)

// --- Mocks ---

type mockRoleSource struct {
	roles []catalog.JobRole
	fp    string
	err   error
}

func (m *mockRoleSource) JobRoles(_ context.Context) ([]catalog.JobRole, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.roles, m.fp, nil
}

type mockCourseSource struct {
	courses []catalog.Course
	err     error
}

func (m *mockCourseSource) Courses(_ context.Context) ([]catalog.Course, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.courses, "courses", nil
}

type nopArtifacts struct{}

func (nopArtifacts) Load(_ context.Context, _, _ string, _ any) (domain.ArtifactInfo, bool) {
	return domain.ArtifactInfo{}, false
}

func (nopArtifacts) Save(_ context.Context, model, fp string, _ any) (domain.ArtifactInfo, error) {
	return domain.ArtifactInfo{Model: model, Fingerprint: fp}, nil
}

func (nopArtifacts) Delete(context.Context, string) error { return nil }

var testForest = forest.Config{Trees: 30, MaxDepth: 8, Seed: 42}

func testRoles() []catalog.JobRole {
	return []catalog.JobRole{
		{Name: "Electrician", Sector: "Electrical", NSQFLevel: 4, RequiredSkills: "wiring,electrical safety,tools,circuits"},
		{Name: "Data Analyst", Sector: "IT", NSQFLevel: 5, RequiredSkills: "python,sql,excel,statistics"},
		{Name: "Web Developer", Sector: "IT", NSQFLevel: 4, RequiredSkills: "html,css,javascript,sql"},
		{Name: "Senior Data Analyst", Sector: "IT", NSQFLevel: 6, RequiredSkills: "python,sql,statistics,tableau,leadership"},
		{Name: "Welder", Sector: "Manufacturing", NSQFLevel: 3, RequiredSkills: "welding,safety,tools"},
	}
}

func testCourses() []catalog.Course {
	return []catalog.Course{
		{ID: "C1", Name: "SQL Essentials", Sector: "IT", Skills: "sql,databases", NSQFLevel: 4, Duration: "2 Months"},
		{ID: "C2", Name: "Statistics with Python", Sector: "IT", Skills: "python,statistics,sql", NSQFLevel: 5, Duration: "3 Months"},
		{ID: "C3", Name: "Welding Basics", Sector: "Manufacturing", Skills: "welding", NSQFLevel: 3, Duration: "6 Months"},
	}
}
