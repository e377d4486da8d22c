package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/ml/tfidf"
)

// ModelName keys the recommender artifact and its metrics.
const ModelName = "recommender"

const defaultMaxFeatures = tfidf.DefaultMaxFeatures

// Model is the persisted recommender state: the fitted vectorizer, one
// L2-normalised vector per course and the course records in CSV order.
type Model struct {
	Vectorizer *tfidf.Model     `json:"vectorizer"`
	Matrix     []tfidf.Vector   `json:"matrix"`
	Courses    []catalog.Course `json:"courses"`
}

// Validate rejects a decoded model that rank cannot serve.
func (m Model) Validate() error {
	if m.Vectorizer == nil {
		return errors.New("missing vectorizer")
	}
	if len(m.Matrix) != len(m.Courses) {
		return fmt.Errorf("matrix has %d rows for %d courses", len(m.Matrix), len(m.Courses))
	}
	return nil
}

// corpusText weights skills and job role twice.
func corpusText(c catalog.Course) string {
	skills := c.SkillsText()
	return strings.Join([]string{skills, skills, c.Sector, c.JobRole, c.JobRole, c.Name}, " ")
}

// Fit builds a model over courses.
func Fit(courses []catalog.Course, maxFeatures int) Model {
	docs := make([]string, len(courses))
	for i, c := range courses {
		docs[i] = corpusText(c)
	}
	vec := tfidf.Fit(docs, maxFeatures)
	return Model{
		Vectorizer: vec,
		Matrix:     vec.TransformAll(docs),
		Courses:    courses,
	}
}

// trainer adapts the course source to modelstate.Trainer.
type trainer struct {
	courses     CourseSource
	maxFeatures int
}

func (t trainer) Fingerprint(ctx context.Context) (string, error) {
	_, fp, err := t.courses.Courses(ctx)
	return fp, err
}

func (t trainer) Train(ctx context.Context) (Model, string, error) {
	courses, fp, err := t.courses.Courses(ctx)
	if err != nil {
		return Model{}, "", err
	}
	return Fit(courses, t.maxFeatures), fp, nil
}
