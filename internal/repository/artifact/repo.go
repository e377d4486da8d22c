package artifact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/db"
)

// store is the consumer interface for artifact blobs (ISP).
// Implemented by FileStore and by db.Store.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo loads and saves model artifacts keyed by model name.
type Repo struct {
	store      store
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
	now        func() time.Time
}

// New creates an artifact repository.
// cacheTotal is a counter vec with labels "model" and "result" ("hit"/"miss"/"stale"), passed explicitly.
func New(s store, prefix string, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Repo {
	return &Repo{
		store:      s,
		prefix:     prefix,
		cacheTotal: cacheTotal,
		logger:     logger,
		now:        time.Now,
	}
}

func (r *Repo) key(model string) string {
	return r.prefix + "model:" + model
}

// Load decodes the stored artifact for model into v. It reports false when
// there is no artifact, when it cannot be decoded, or when it was built from
// data whose fingerprint differs. Read failures are logged and treated as misses
// so the caller falls back to training.
func (r *Repo) Load(ctx context.Context, model, fingerprint string, v any) (Header, bool) {
	key := r.key(model)

	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("Failed to read model artifact", zap.String("key", key), zap.Error(err))
		}
		r.inc(model, "miss")
		return Header{}, false
	}

	h, err := Decode(data, v)
	if err != nil {
		r.logger.Warn("Failed to decode model artifact", zap.String("key", key), zap.Error(err))
		r.inc(model, "miss")
		return Header{}, false
	}
	if fingerprint != "" && h.Fingerprint != fingerprint {
		r.logger.Info("Model artifact is stale",
			zap.String("model", model),
			zap.String("artifact_fingerprint", h.Fingerprint),
			zap.String("source_fingerprint", fingerprint),
		)
		r.inc(model, "stale")
		return Header{}, false
	}

	r.inc(model, "hit")
	return h, true
}

// Save encodes v and stores it, returning the header written.
func (r *Repo) Save(ctx context.Context, model, fingerprint string, v any) (Header, error) {
	h := Header{
		Version:     FormatVersion,
		Model:       model,
		Fingerprint: fingerprint,
		BuiltAt:     r.now().UTC(),
	}
	data, err := Encode(h, v)
	if err != nil {
		return h, fmt.Errorf("encode %s artifact: %w", model, err)
	}
	if err := r.store.Set(ctx, r.key(model), data); err != nil {
		return h, fmt.Errorf("store %s artifact: %w", model, err)
	}
	return h, nil
}

// Delete removes the artifact for model.
func (r *Repo) Delete(ctx context.Context, model string) error {
	if err := r.store.Del(ctx, r.key(model)); err != nil {
		return fmt.Errorf("delete %s artifact: %w", model, err)
	}
	return nil
}

func (r *Repo) inc(model, result string) {
	if r.cacheTotal != nil {
		r.cacheTotal.WithLabelValues(model, result).Inc()
	}
}
