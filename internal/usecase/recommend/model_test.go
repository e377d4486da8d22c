package recommend

import (
	"context"
	"testing"

	"go.uber.org/zap"

	artifactrepo "github.com/kailas-cloud/careersetu/internal/repository/artifact"
)

func TestModel_Validate(t *testing.T) {
	good := Fit(testCourses(), 0)
	if err := good.Validate(); err != nil {
		t.Fatalf("fitted model invalid: %v", err)
	}

	noVec := good
	noVec.Vectorizer = nil
	if err := noVec.Validate(); err == nil {
		t.Error("expected error for missing vectorizer")
	}

	short := good
	short.Matrix = short.Matrix[:1]
	if err := short.Validate(); err == nil {
		t.Error("expected error for matrix/course mismatch")
	}
}

func TestRecommend_NullVectorizerArtifactRetrains(t *testing.T) {
	fs, err := artifactrepo.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	arts := artifactrepo.New(fs, "", nil, zap.NewNop())
	ctx := context.Background()

	// Decodes cleanly as {"vectorizer":null,...} with a matching fingerprint.
	if _, err := arts.Save(ctx, ModelName, "fp1", Model{Courses: testCourses()}); err != nil {
		t.Fatal(err)
	}

	svc := New(&mockCourseSource{courses: testCourses(), fp: "fp1"}, arts, 0, zap.NewNop())
	recs, err := svc.Recommend(ctx, mustQuery(t, "python sql", "", 0, 0, "", 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) == 0 || recs[0].Course.ID != "C2" {
		t.Errorf("recs = %+v, want C2 first", recs)
	}

	var stored Model
	if _, ok := arts.Load(ctx, ModelName, "fp1", &stored); !ok || stored.Vectorizer == nil {
		t.Error("retrained model should replace the invalid artifact")
	}
}
