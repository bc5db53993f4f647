package usecase

import (
	"context"
	"time"

	"rental-service/internal/domain/repository"
	"rental-service/pkg/logger"
	"rental-service/pkg/metrics"
)

// ThumbnailEnsurer fills in missing thumbnail URLs through a ThumbnailProvider
type ThumbnailEnsurer struct {
	provider repository.ThumbnailProvider
	timeout  time.Duration
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewThumbnailEnsurer creates a new ensurer. A nil provider disables enrichment.
func NewThumbnailEnsurer(provider repository.ThumbnailProvider, timeout time.Duration, m *metrics.Metrics, logger logger.Logger) *ThumbnailEnsurer {
	return &ThumbnailEnsurer{
		provider: provider,
		timeout:  timeout,
		metrics:  m,
		logger:   logger,
	}
}

// Ensure returns items with every incomplete thumbnail set replaced by the provider's
// result. Only incomplete items are sent. When the provider fails or times out the
// items come back unchanged.
func (e *ThumbnailEnsurer) Ensure(ctx context.Context, items []FoundProperty) []FoundProperty {
	out := make([]FoundProperty, len(items))
	copy(out, items)

	var (
		pending  []int
		requests []repository.ThumbnailRequest
	)
	seen := make(map[string]bool)
	for i, item := range items {
		if item.Thumbnails().Complete() {
			continue
		}
		pending = append(pending, i)
		id := item.PropertyID()
		if seen[id] {
			continue
		}
		seen[id] = true
		requests = append(requests, repository.ThumbnailRequest{
			PropertyID:  id,
			SourceImage: item.SourceImage(),
		})
	}

	if len(pending) == 0 {
		e.metrics.ThumbnailEnsures.WithLabelValues("complete").Inc()
		return out
	}
	if e.provider == nil {
		e.metrics.ThumbnailEnsures.WithLabelValues("skipped").Inc()
		return out
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	e.logger.Info("Properties missing thumbnail URLs, ensuring they are available", "count", len(requests))

	found, err := e.provider.EnsureThumbnails(callCtx, requests)
	if err != nil {
		e.metrics.ThumbnailEnsures.WithLabelValues("failed").Inc()
		e.logger.Warn("Failed to ensure thumbnails", "count", len(requests), "error", err)
		return out
	}

	for _, i := range pending {
		t, ok := found[items[i].PropertyID()]
		if !ok {
			e.metrics.ThumbnailEnsures.WithLabelValues("missing").Inc()
			continue
		}
		out[i] = items[i].WithThumbnails(t)
		e.metrics.ThumbnailEnsures.WithLabelValues("enriched").Inc()
	}

	return out
}
