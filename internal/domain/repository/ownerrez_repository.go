package repository

import (
	"context"
	"encoding/json"

	"rental-service/internal/domain/entity"
)

// OwnerRezRepository defines the operations used against the OwnerRez API
type OwnerRezRepository interface {
	FetchBookings(ctx context.Context, query entity.BookingQuery) (*entity.BookingPage, error)
	FetchGuests(ctx context.Context, createdSince string) ([]entity.Guest, error)
	GetProperty(ctx context.Context, id string) (*entity.RemoteProperty, error)
	UpdateProperty(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error)
	UpdateGuest(ctx context.Context, guestID int64, update entity.GuestUpdate) error
}
