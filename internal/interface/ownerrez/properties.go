package ownerrez

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"rental-service/internal/domain/entity"
)

// GetProperty fetches a single property record from the v2 API
func (c *Client) GetProperty(ctx context.Context, id string) (*entity.RemoteProperty, error) {
	resp, err := c.do(ctx, "get_property", http.MethodGet, endpoint(c.v2URL, "properties", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var property entity.RemoteProperty
	if err := json.Unmarshal(resp.Body(), &property); err != nil {
		return nil, fmt.Errorf("failed to decode property %s: %w", id, err)
	}
	return &property, nil
}

// UpdateProperty sends a property update to the v1 API and returns the remote
// response body untouched
func (c *Client) UpdateProperty(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	payload := []byte(body)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	resp, err := c.do(ctx, "update_property", http.MethodPut, endpoint(c.v1URL, "properties", id), nil, payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Property updated in OwnerRez", "propertyId", id)

	result := resp.Body()
	if len(result) == 0 || !json.Valid(result) {
		return json.RawMessage("{}"), nil
	}
	return json.RawMessage(result), nil
}
