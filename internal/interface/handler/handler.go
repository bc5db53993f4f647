package handler

import (
	"context"
	"encoding/json"
	"strconv"

	"rental-service/internal/domain/entity"
	"rental-service/internal/domain/repository"
	"rental-service/internal/infrastructure/auth"
	"rental-service/internal/usecase"
	"rental-service/pkg/logger"
)

// BookingLister lists bookings joined with guests
type BookingLister interface {
	ListBookings(ctx context.Context, query entity.BookingQuery, guestSince string) (*entity.BookingListing, error)
}

// PropertyManager reads and writes merged properties
type PropertyManager interface {
	GetProperty(ctx context.Context, id string) (usecase.MergeResult, string, error)
	UpdateProperty(ctx context.Context, id string, body json.RawMessage, actorID, requestID string) (json.RawMessage, error)
	SaveLocalProperty(ctx context.Context, id string, input *entity.LocalPropertyInput) (*entity.LocalProperty, error)
}

// ProfileManager updates account profiles
type ProfileManager interface {
	UpdateProfile(ctx context.Context, user *entity.User, req *entity.ProfileUpdateRequest, requestID string) (*entity.User, error)
	ChangePassword(ctx context.Context, user *entity.User, req *entity.PasswordChangeRequest) error
}

// SessionVerifier validates session tokens
type SessionVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

// Options holds request defaults
type Options struct {
	DefaultSince  string
	SessionCookie string
}

// Handler serves the HTTP API
type Handler struct {
	bookings   BookingLister
	properties PropertyManager
	profiles   ProfileManager
	audits     repository.SyncAuditRepository
	users      repository.UserRepository
	sessions   SessionVerifier
	opts       Options
	logger     logger.Logger
}

// NewHandler creates a new Handler
func NewHandler(
	opts Options,
	bookings BookingLister,
	properties PropertyManager,
	profiles ProfileManager,
	audits repository.SyncAuditRepository,
	users repository.UserRepository,
	sessions SessionVerifier,
	logger logger.Logger,
) *Handler {
	if opts.DefaultSince == "" {
		opts.DefaultSince = "2024-01-01T00:00:00Z"
	}
	if opts.SessionCookie == "" {
		opts.SessionCookie = "authToken"
	}
	return &Handler{
		bookings:   bookings,
		properties: properties,
		profiles:   profiles,
		audits:     audits,
		users:      users,
		sessions:   sessions,
		opts:       opts,
		logger:     logger,
	}
}

// intQuery parses an integer query value, falling back to def when absent or malformed
func intQuery(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
