package recommend

import (
	"context"
	"sync"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
)

// --- Mocks ---

type mockCourseSource struct {
	courses []catalog.Course
	fp      string
	err     error
}

func (m *mockCourseSource) Courses(_ context.Context) ([]catalog.Course, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.courses, m.fp, nil
}

// nopArtifacts never has a stored model and discards saves.
type nopArtifacts struct {
	mu    sync.Mutex
	saves int
}

func (a *nopArtifacts) Load(_ context.Context, _, _ string, _ any) (domain.ArtifactInfo, bool) {
	return domain.ArtifactInfo{}, false
}

func (a *nopArtifacts) Save(_ context.Context, model, fp string, _ any) (domain.ArtifactInfo, error) {
	a.mu.Lock()
	a.saves++
	a.mu.Unlock()
	return domain.ArtifactInfo{Model: model, Fingerprint: fp}, nil
}

func (a *nopArtifacts) Delete(context.Context, string) error { return nil }

func testCourses() []catalog.Course {
	return []catalog.Course{
		{ID: "C1", Name: "Domestic Electrician", Sector: "Electrical", Skills: "wiring,electrical safety,tools", NSQFLevel: 4, Duration: "6 Months", JobRole: "Electrician"},
		{ID: "C2", Name: "Python for Data Analysis", Sector: "IT", Skills: "python,sql,statistics", NSQFLevel: 5, Duration: "3 Months", JobRole: "Data Analyst"},
		{ID: "C3", Name: "Web Development Basics", Sector: "IT", Skills: "html,css,javascript", NSQFLevel: 4, Duration: "4 Months", JobRole: "Web Developer"},
		{ID: "C4", Name: "Welding Technician", Sector: "Manufacturing", Skills: "welding,metal cutting,safety", NSQFLevel: 3, Duration: "12 Months", JobRole: "Welder"},
		{ID: "C5", Name: "Advanced Data Science", Sector: "IT", Skills: "python,machine learning,statistics", NSQFLevel: 7, Duration: "self paced", JobRole: "Data Scientist"},
	}
}
