// Package dataset reads the CSV files that are the source of truth for courses,
// job roles, NSQF levels and job-market history. Files are read on every call;
// nothing is written back.
package dataset

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
)

// Paths locates each dataset file.
type Paths struct {
	Courses    string
	JobRoles   string
	NSQFLevels string
	JobMarket  string
}

// Source loads catalog records from CSV files.
type Source struct {
	paths Paths
}

// New creates a dataset source.
func New(paths Paths) *Source {
	return &Source{paths: paths}
}

// Courses loads courses.csv and returns the rows plus the file fingerprint.
// Rows without a course_id are skipped.
func (s *Source) Courses(ctx context.Context) ([]catalog.Course, string, error) {
	t, err := readTable(ctx, s.paths.Courses)
	if err != nil {
		return nil, "", err
	}

	out := make([]catalog.Course, 0, len(t.rows))
	for _, r := range t.rows {
		c := catalog.Course{
			ID:        t.str(r, "course_id"),
			Name:      t.str(r, "course_name"),
			Sector:    t.str(r, "sector"),
			Skills:    t.str(r, "skills_covered"),
			NSQFLevel: t.integer(r, "nsqf_level"),
			Duration:  t.str(r, "duration"),
			JobRole:   t.str(r, "job_role"),
		}
		if c.ID == "" {
			continue
		}
		out = append(out, c)
	}
	return out, t.fingerprint, nil
}

// JobRoles loads job_roles.csv and returns the rows plus the file fingerprint.
// Rows without a job_role are skipped.
func (s *Source) JobRoles(ctx context.Context) ([]catalog.JobRole, string, error) {
	t, err := readTable(ctx, s.paths.JobRoles)
	if err != nil {
		return nil, "", err
	}

	out := make([]catalog.JobRole, 0, len(t.rows))
	for _, r := range t.rows {
		j := catalog.JobRole{
			Name:           t.str(r, "job_role"),
			Sector:         t.str(r, "sector"),
			NSQFLevel:      t.integer(r, "nsqf_level"),
			RequiredSkills: t.str(r, "required_skills"),
		}
		if j.Name == "" {
			continue
		}
		out = append(out, j)
	}
	return out, t.fingerprint, nil
}

// Levels loads nsqf_levels.csv. An empty next_level marks the top of the ladder.
func (s *Source) Levels(ctx context.Context) ([]catalog.Level, error) {
	t, err := readTable(ctx, s.paths.NSQFLevels)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Level, 0, len(t.rows))
	for _, r := range t.rows {
		if t.str(r, "nsqf_level") == "" {
			continue
		}
		next, hasNext := t.optionalInt(r, "next_level")
		out = append(out, catalog.Level{
			Level:          t.integer(r, "nsqf_level"),
			NextLevel:      next,
			HasNext:        hasNext,
			RequiredSkills: t.str(r, "required_skills"),
			Description:    t.str(r, "description"),
		})
	}
	return out, nil
}

// Market loads job_market.csv.
func (s *Source) Market(ctx context.Context) ([]catalog.MarketPoint, error) {
	t, err := readTable(ctx, s.paths.JobMarket)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.MarketPoint, 0, len(t.rows))
	for _, r := range t.rows {
		p := catalog.MarketPoint{
			Skill:       t.str(r, "skill"),
			Year:        t.integer(r, "year"),
			DemandCount: t.float(r, "demand_count"),
			AvgSalary:   t.float(r, "avg_salary"),
		}
		if p.Skill == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Check reports the first dataset file that cannot be opened.
func (s *Source) Check(_ context.Context) error {
	for _, p := range []string{s.paths.Courses, s.paths.JobRoles, s.paths.NSQFLevels, s.paths.JobMarket} {
		f, err := os.Open(filepath.Clean(p))
		if err != nil {
			return fmt.Errorf("%w: %s", domain.ErrDatasetUnavailable, filepath.Base(p))
		}
		_ = f.Close()
	}
	return nil
}

// table is a parsed CSV file with a header row.
type table struct {
	cols        map[string]int
	rows        [][]string
	fingerprint string
}

func readTable(ctx context.Context, path string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrDatasetUnavailable, filepath.Base(path), err)
	}
	sum := sha256.Sum256(data)
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &table{cols: map[string]int{}, fingerprint: hex.EncodeToString(sum[:])}, nil
		}
		return nil, fmt.Errorf("%w: parse %s header: %w", domain.ErrDatasetUnavailable, filepath.Base(path), err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrDatasetUnavailable, filepath.Base(path), err)
	}

	return &table{cols: cols, rows: rows, fingerprint: hex.EncodeToString(sum[:])}, nil
}

// str returns the trimmed cell, "" for missing columns and NaN markers.
func (t *table) str(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

func (t *table) float(row []string, col string) float64 {
	f, err := strconv.ParseFloat(t.str(row, col), 64)
	if err != nil {
		return 0
	}
	return f
}

// integer accepts "4" and "4.0"; unparsable cells become 0.
func (t *table) integer(row []string, col string) int {
	return int(t.float(row, col))
}

func (t *table) optionalInt(row []string, col string) (int, bool) {
	v := t.str(row, col)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
