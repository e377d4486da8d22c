// Package modelstate holds one trained model per service as an immutable
// snapshot behind an atomic pointer. The first reader loads the persisted
// artifact or trains; concurrent first readers share that work. Rebuilds
// train a fresh snapshot and swap it in without blocking readers.
package modelstate

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/metrics"
)

// ArtifactStore persists trained payloads keyed by model name.
type ArtifactStore interface {
	Load(ctx context.Context, model, fingerprint string, v any) (domain.ArtifactInfo, bool)
	Save(ctx context.Context, model, fingerprint string, v any) (domain.ArtifactInfo, error)
	Delete(ctx context.Context, model string) error
}

// Trainer builds a model payload from the current source data.
type Trainer[P any] interface {
	// Fingerprint identifies the current source data.
	Fingerprint(ctx context.Context) (string, error)
	// Train returns a fresh payload and the fingerprint of the data it was built from.
	Train(ctx context.Context) (P, string, error)
}

// Validator is implemented by payloads that can tell a decoded artifact is unusable.
// An invalid artifact is treated as a miss and the model is retrained.
type Validator interface {
	Validate() error
}

// Snapshot is an immutable trained model with its artifact metadata.
type Snapshot[P any] struct {
	Payload P
	Info    domain.ArtifactInfo
}

// Holder owns the current snapshot of one model.
type Holder[P any] struct {
	name      string
	trainer   Trainer[P]
	artifacts ArtifactStore
	logger    *zap.Logger

	current atomic.Pointer[Snapshot[P]]
	group   singleflight.Group
}

// New creates a holder. Nothing is loaded until the first Get or Rebuild.
func New[P any](name string, trainer Trainer[P], artifacts ArtifactStore, logger *zap.Logger) *Holder[P] {
	return &Holder[P]{
		name:      name,
		trainer:   trainer,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Get returns the current snapshot, initialising it on first use.
// Failures wrap domain.ErrModelUnavailable.
func (h *Holder[P]) Get(ctx context.Context) (*Snapshot[P], error) {
	if s := h.current.Load(); s != nil {
		return s, nil
	}
	return h.do(ctx, "init", h.init)
}

// Rebuild drops the persisted artifact, trains from the current source data,
// persists the new artifact and swaps the snapshot in. Concurrent rebuilds
// share one training run. The current snapshot keeps serving until the swap.
func (h *Holder[P]) Rebuild(ctx context.Context) (*Snapshot[P], error) {
	return h.do(ctx, "rebuild", func(ctx context.Context) (*Snapshot[P], error) {
		if err := h.artifacts.Delete(ctx, h.name); err != nil {
			h.logger.Warn("Failed to delete model artifact", zap.String("model", h.name), zap.Error(err))
		}
		return h.rebuild(ctx)
	})
}

// Loaded reports the current snapshot without initialising it.
func (h *Holder[P]) Loaded() (*Snapshot[P], bool) {
	s := h.current.Load()
	return s, s != nil
}

// do runs fn once per key across concurrent callers. The shared run is
// detached from the caller's cancellation; a canceled caller stops waiting.
func (h *Holder[P]) do(
	ctx context.Context, key string, fn func(context.Context) (*Snapshot[P], error),
) (*Snapshot[P], error) {
	ch := h.group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot[P]), nil
	}
}

func (h *Holder[P]) init(ctx context.Context) (*Snapshot[P], error) {
	if s := h.current.Load(); s != nil {
		return s, nil
	}

	fp, err := h.trainer.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrModelUnavailable, h.name, err)
	}

	var payload P
	if info, ok := h.artifacts.Load(ctx, h.name, fp, &payload); ok {
		if v, isValidator := any(payload).(Validator); isValidator {
			if err := v.Validate(); err != nil {
				h.logger.Warn("Discarding invalid model artifact", zap.String("model", h.name), zap.Error(err))
				return h.rebuild(ctx)
			}
		}
		s := &Snapshot[P]{Payload: payload, Info: info}
		h.current.Store(s)
		h.logger.Info("Model loaded from artifact",
			zap.String("model", h.name),
			zap.Time("built_at", info.BuiltAt),
		)
		return s, nil
	}

	return h.rebuild(ctx)
}

func (h *Holder[P]) rebuild(ctx context.Context) (*Snapshot[P], error) {
	start := time.Now()
	payload, fp, err := h.trainer.Train(ctx)
	metrics.ModelTrainingDuration.WithLabelValues(h.name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelTrainingsTotal.WithLabelValues(h.name, "error").Inc()
		h.logger.Error("Model training failed", zap.String("model", h.name), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrModelUnavailable, h.name, err)
	}
	metrics.ModelTrainingsTotal.WithLabelValues(h.name, "ok").Inc()

	info, err := h.artifacts.Save(ctx, h.name, fp, payload)
	if err != nil {
		// The in-memory model is still valid; the next cold start retrains.
		h.logger.Warn("Failed to persist model artifact", zap.String("model", h.name), zap.Error(err))
	}

	s := &Snapshot[P]{Payload: payload, Info: info}
	h.current.Store(s)
	h.logger.Info("Model trained",
		zap.String("model", h.name),
		zap.Duration("took", time.Since(start)),
		zap.String("fingerprint", fp),
	)
	return s, nil
}
