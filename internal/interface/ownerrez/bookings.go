package ownerrez

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"
)

// Bounds applied to the bookings page size
const (
	MinBookingLimit = 1
	MaxBookingLimit = 100
)

// ClampLimit forces limit into [MinBookingLimit, MaxBookingLimit]
func ClampLimit(limit int) int {
	if limit < MinBookingLimit {
		return MinBookingLimit
	}
	if limit > MaxBookingLimit {
		return MaxBookingLimit
	}
	return limit
}

// FetchBookings fetches one page of bookings. Limits above 100 are clamped, not rejected.
func (c *Client) FetchBookings(ctx context.Context, query entity.BookingQuery) (*entity.BookingPage, error) {
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(ClampLimit(query.Limit)))
	params.Set("offset", strconv.Itoa(offset))
	if query.Since != "" {
		params.Set("since_utc", query.Since)
	}

	resp, err := c.do(ctx, "fetch_bookings", http.MethodGet, endpoint(c.v2URL, "bookings"), params, nil)
	if err != nil {
		return nil, err
	}

	var page entity.BookingPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("failed to decode bookings page: %w", err)
	}

	c.logger.Info("Bookings fetched",
		"count", len(page.Items),
		"total", page.Total,
		"offset", page.Offset)

	return &page, nil
}

// FetchGuests follows next_page_url cursors until the listing is drained. It stops with
// ErrPageLimitExceeded after maxGuestPages pages, and with ErrCursorRejected when a cursor
// repeats or leaves the API host.
func (c *Client) FetchGuests(ctx context.Context, createdSince string) ([]entity.Guest, error) {
	if c.guestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.guestTimeout)
		defer cancel()
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.guestPageSize))
	if createdSince != "" {
		params.Set("created_since_utc", createdSince)
	}
	next := endpoint(c.v2URL, "guests") + "?" + params.Encode()

	var guests []entity.Guest
	visited := make(map[string]bool)

	for pageNo := 1; next != ""; pageNo++ {
		if pageNo > c.maxGuestPages {
			return nil, fmt.Errorf("guests listing still paginating after %d pages: %w", c.maxGuestPages, apperror.ErrPageLimitExceeded)
		}
		visited[next] = true

		resp, err := c.do(ctx, "fetch_guests", http.MethodGet, next, nil, nil)
		if err != nil {
			return nil, err
		}

		var page entity.GuestPage
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			return nil, fmt.Errorf("failed to decode guests page %d: %w", pageNo, err)
		}
		guests = append(guests, page.Items...)
		c.metrics.GuestPagesFetched.Inc()

		next, err = c.resolveCursor(page.NextPageURL)
		if err != nil {
			return nil, err
		}
		if next != "" && visited[next] {
			return nil, fmt.Errorf("guests cursor %q repeats: %w", next, apperror.ErrCursorRejected)
		}
	}

	c.logger.Info("Guests fetched", "count", len(guests))
	return guests, nil
}

// resolveCursor turns a relative or absolute next_page_url into an absolute url on the API host
func (c *Client) resolveCursor(cursor string) (string, error) {
	if cursor == "" {
		return "", nil
	}

	ref, err := url.Parse(cursor)
	if err != nil {
		return "", fmt.Errorf("unparseable cursor %q: %w", cursor, apperror.ErrCursorRejected)
	}

	resolved := c.v2URL.ResolveReference(ref)
	if resolved.Scheme != c.v2URL.Scheme || resolved.Host != c.v2URL.Host {
		return "", fmt.Errorf("cursor %q points outside %s: %w", cursor, c.v2URL.Host, apperror.ErrCursorRejected)
	}
	return resolved.String(), nil
}

// UpdateGuest writes name and phone changes to an OwnerRez guest
func (c *Client) UpdateGuest(ctx context.Context, guestID int64, update entity.GuestUpdate) error {
	rawURL := endpoint(c.v2URL, "guests", strconv.FormatInt(guestID, 10))
	if _, err := c.do(ctx, "update_guest", http.MethodPut, rawURL, nil, update); err != nil {
		return err
	}

	c.logger.Info("Guest updated in OwnerRez", "guestId", guestID)
	return nil
}
