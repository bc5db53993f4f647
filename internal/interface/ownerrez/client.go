package ownerrez

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/infrastructure/config"
	"rental-service/pkg/logger"
	"rental-service/pkg/metrics"

	"github.com/go-resty/resty/v2"
)

const (
	defaultGuestPageSize = 1000
	defaultMaxGuestPages = 50
	errorPreviewLength   = 200
)

// Client talks to the OwnerRez API with a static HTTP Basic credential pair
type Client struct {
	http          *resty.Client
	v2URL         *url.URL
	v1URL         *url.URL
	guestPageSize int
	maxGuestPages int
	guestTimeout  time.Duration
	metrics       *metrics.Metrics
	logger        logger.Logger
}

// NewClient creates a new OwnerRez client. Missing credentials are reported here,
// before any request is made.
func NewClient(cfg *config.Config, m *metrics.Metrics, log logger.Logger) (*Client, error) {
	var missing []string
	if cfg.OwnerRezUsername == "" {
		missing = append(missing, "OWNERREZ_USERNAME")
	}
	if cfg.OwnerRezAccessToken == "" {
		missing = append(missing, "OWNERREZ_ACCESS_TOKEN")
	}
	if cfg.OwnerRezV2URL == "" {
		missing = append(missing, "OWNERREZ_API_V2")
	}
	if len(missing) > 0 {
		return nil, &apperror.ConfigurationError{Missing: missing}
	}

	v2URL, err := parseBaseURL(cfg.OwnerRezV2URL)
	if err != nil {
		return nil, fmt.Errorf("invalid OwnerRez v2 url: %w", err)
	}

	// v1 is only used for property writes; fall back to the v2 host
	v1Raw := cfg.OwnerRezV1URL
	if v1Raw == "" {
		v1Raw = strings.TrimSuffix(cfg.OwnerRezV2URL, "/v2") + "/v1"
	}
	v1URL, err := parseBaseURL(v1Raw)
	if err != nil {
		return nil, fmt.Errorf("invalid OwnerRez v1 url: %w", err)
	}

	timeout := cfg.OwnerRezTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(cfg.OwnerRezRetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetBasicAuth(cfg.OwnerRezUsername, cfg.OwnerRezAccessToken).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	pageSize := cfg.GuestPageSize
	if pageSize <= 0 {
		pageSize = defaultGuestPageSize
	}
	maxPages := cfg.GuestMaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxGuestPages
	}

	return &Client{
		http:          httpClient,
		v2URL:         v2URL,
		v1URL:         v1URL,
		guestPageSize: pageSize,
		maxGuestPages: maxPages,
		guestTimeout:  cfg.GuestFetchTimeout,
		metrics:       m,
		logger:        log,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("url %q must be absolute", raw)
	}
	return u, nil
}

// endpoint joins path segments onto a base url
func endpoint(base *url.URL, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return base.String() + "/" + strings.Join(escaped, "/")
}

// do executes one request and turns non-2xx responses into *apperror.RemoteAPIError
func (c *Client) do(ctx context.Context, operation, method, rawURL string, query url.Values, body interface{}) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, rawURL)
	c.metrics.RemoteLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.RemoteRequests.WithLabelValues(operation, "error").Inc()
		c.logger.Error("OwnerRez request failed",
			"operation", operation,
			"url", rawURL,
			"error", err)
		return nil, fmt.Errorf("%s: request failed: %w", operation, err)
	}

	c.metrics.RemoteRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode())).Inc()
	c.logger.Debug("OwnerRez API response",
		"operation", operation,
		"status", resp.StatusCode(),
		"url", resp.Request.URL,
		"duration", resp.Time().String())

	if !resp.IsSuccess() {
		apiErr := newRemoteAPIError(operation, resp.StatusCode(), resp.Header().Get("Content-Type"), resp.Body())
		c.logger.Warn("OwnerRez API returned error",
			"operation", operation,
			"status", apiErr.Status,
			"message", apiErr.Message)
		return resp, apiErr
	}

	return resp, nil
}

// newRemoteAPIError builds the error for a non-2xx response. JSON bodies give their
// message field, anything else is reported as a bounded preview.
func newRemoteAPIError(operation string, status int, contentType string, body []byte) *apperror.RemoteAPIError {
	apiErr := &apperror.RemoteAPIError{Operation: operation, Status: status}

	if strings.Contains(strings.ToLower(contentType), "application/json") {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			apiErr.Message = fmt.Sprintf("Failed to parse error response: %s", http.StatusText(status))
			return apiErr
		}
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = "Unknown error"
		}
		apiErr.Details = json.RawMessage(append([]byte(nil), body...))
		return apiErr
	}

	apiErr.Message = fmt.Sprintf("Non-JSON response: %s...", preview(string(body), errorPreviewLength))
	return apiErr
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
