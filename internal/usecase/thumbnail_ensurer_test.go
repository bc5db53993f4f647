package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-service/internal/domain/entity"
	"rental-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullThumbs = entity.Thumbnails{
	Small:  "https://cdn.example.com/s.jpg",
	Medium: "https://cdn.example.com/m.jpg",
	Large:  "https://cdn.example.com/l.jpg",
}

func TestThumbnailEnsurer_SkipsCompleteItems(t *testing.T) {
	provider := &fakeThumbnailProvider{}
	e := NewThumbnailEnsurer(provider, time.Second, newTestMetrics(), logger.NewNopLogger())

	complete := MergeProperty(remoteProperty(t, `{"id":1}`), nil, "").(FoundProperty).WithThumbnails(fullThumbs)
	out := e.Ensure(context.Background(), []FoundProperty{complete})

	require.Len(t, out, 1)
	assert.Equal(t, complete, out[0])
	assert.Zero(t, provider.calls)
}

func TestThumbnailEnsurer_EnrichesOnlyIncomplete(t *testing.T) {
	provider := &fakeThumbnailProvider{result: map[string]entity.Thumbnails{"2": fullThumbs}}
	e := NewThumbnailEnsurer(provider, time.Second, newTestMetrics(), logger.NewNopLogger())

	complete := MergeProperty(remoteProperty(t, `{"id":1}`), nil, "").(FoundProperty).WithThumbnails(fullThumbs)
	missing := MergeProperty(remoteProperty(t, `{"id":2,"image_url":"https://img.example.com/2.jpg"}`), nil, "").(FoundProperty)

	out := e.Ensure(context.Background(), []FoundProperty{complete, missing})

	require.Len(t, out, 2)
	assert.Equal(t, 1, provider.calls)
	require.Len(t, provider.requests, 1)
	assert.Equal(t, "2", provider.requests[0].PropertyID)
	assert.Equal(t, "https://img.example.com/2.jpg", provider.requests[0].SourceImage)
	assert.True(t, out[1].Thumbnails().Complete())
	assert.False(t, missing.Thumbnails().Complete())
}

func TestThumbnailEnsurer_ProviderFailureReturnsItemsUnchanged(t *testing.T) {
	provider := &fakeThumbnailProvider{err: errors.New("service down")}
	e := NewThumbnailEnsurer(provider, time.Second, newTestMetrics(), logger.NewNopLogger())

	item := MergeProperty(nil, localFixture(), "err").(FoundProperty)
	out := e.Ensure(context.Background(), []FoundProperty{item})

	assert.Equal(t, item, out[0])
}

func TestThumbnailEnsurer_Timeout(t *testing.T) {
	provider := &fakeThumbnailProvider{wait: true}
	e := NewThumbnailEnsurer(provider, 20*time.Millisecond, newTestMetrics(), logger.NewNopLogger())

	item := MergeProperty(remoteProperty(t, `{"id":3}`), nil, "").(FoundProperty)

	start := time.Now()
	out := e.Ensure(context.Background(), []FoundProperty{item})

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, item, out[0])
}

func TestThumbnailEnsurer_NilProvider(t *testing.T) {
	e := NewThumbnailEnsurer(nil, time.Second, newTestMetrics(), logger.NewNopLogger())

	item := MergeProperty(remoteProperty(t, `{"id":3}`), nil, "").(FoundProperty)
	out := e.Ensure(context.Background(), []FoundProperty{item})
	assert.Equal(t, item, out[0])
}
