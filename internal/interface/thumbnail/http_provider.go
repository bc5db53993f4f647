package thumbnail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-service/internal/domain/entity"
	"rental-service/internal/domain/repository"
	"rental-service/pkg/logger"

	"github.com/go-resty/resty/v2"
)

// HTTPProvider asks the thumbnail sizing service to generate thumbnails in batches
type HTTPProvider struct {
	http     *resty.Client
	endpoint string
	logger   logger.Logger
}

type ensureRequest struct {
	Properties []repository.ThumbnailRequest `json:"properties"`
}

type ensuredProperty struct {
	ID json.Number `json:"id"`
	entity.Thumbnails
}

type ensureResponse struct {
	Properties []ensuredProperty `json:"properties"`
}

// NewHTTPProvider creates a provider for the service at baseURL
func NewHTTPProvider(baseURL string, timeout time.Duration, log logger.Logger) (*HTTPProvider, error) {
	if baseURL == "" {
		return nil, errors.New("thumbnail service url is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPProvider{
		http:     client,
		endpoint: strings.TrimSuffix(baseURL, "/") + "/thumbnails/ensure",
		logger:   log,
	}, nil
}

// EnsureThumbnails posts the batch and returns the thumbnails the service produced, keyed by id
func (p *HTTPProvider) EnsureThumbnails(ctx context.Context, requests []repository.ThumbnailRequest) (map[string]entity.Thumbnails, error) {
	result := make(map[string]entity.Thumbnails, len(requests))
	if len(requests) == 0 {
		return result, nil
	}

	var body ensureResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(ensureRequest{Properties: requests}).
		SetResult(&body).
		Post(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("thumbnail service request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("thumbnail service returned %d", resp.StatusCode())
	}

	for _, item := range body.Properties {
		result[item.ID.String()] = item.Thumbnails
	}

	p.logger.Debug("Thumbnails ensured", "requested", len(requests), "returned", len(result))
	return result, nil
}
