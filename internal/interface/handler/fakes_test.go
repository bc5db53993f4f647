package handler

import (
	"context"
	"encoding/json"

	"rental-service/internal/domain/entity"
	"rental-service/internal/infrastructure/auth"
	"rental-service/internal/usecase"
	"rental-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBookings struct {
	listing   *entity.BookingListing
	err       error
	lastQuery entity.BookingQuery
	lastSince string
}

func (f *fakeBookings) ListBookings(ctx context.Context, query entity.BookingQuery, guestSince string) (*entity.BookingListing, error) {
	f.lastQuery = query
	f.lastSince = guestSince
	if f.err != nil {
		return nil, f.err
	}
	return f.listing, nil
}

type fakeProperties struct {
	result    usecase.MergeResult
	remoteErr string
	err       error

	updated     json.RawMessage
	updateErr   error
	lastActor   string
	lastBody    json.RawMessage
	saved       *entity.LocalProperty
	saveErr     error
	lastSavedID string
}

func (f *fakeProperties) GetProperty(ctx context.Context, id string) (usecase.MergeResult, string, error) {
	return f.result, f.remoteErr, f.err
}

func (f *fakeProperties) UpdateProperty(ctx context.Context, id string, body json.RawMessage, actorID, requestID string) (json.RawMessage, error) {
	f.lastActor = actorID
	f.lastBody = body
	return f.updated, f.updateErr
}

func (f *fakeProperties) SaveLocalProperty(ctx context.Context, id string, input *entity.LocalPropertyInput) (*entity.LocalProperty, error) {
	f.lastSavedID = id
	return f.saved, f.saveErr
}

type fakeProfiles struct {
	updated   *entity.User
	err       error
	pwErr     error
	lastUser  *entity.User
	lastReqID string
}

func (f *fakeProfiles) UpdateProfile(ctx context.Context, user *entity.User, req *entity.ProfileUpdateRequest, requestID string) (*entity.User, error) {
	f.lastUser = user
	f.lastReqID = requestID
	return f.updated, f.err
}

func (f *fakeProfiles) ChangePassword(ctx context.Context, user *entity.User, req *entity.PasswordChangeRequest) error {
	f.lastUser = user
	return f.pwErr
}

type fakeAudits struct {
	failures []*entity.SyncAudit
	err      error
}

func (f *fakeAudits) Record(ctx context.Context, audit *entity.SyncAudit) error { return nil }

func (f *fakeAudits) RecentFailures(ctx context.Context, limit int) ([]*entity.SyncAudit, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.failures) {
		return f.failures[:limit], nil
	}
	return f.failures, nil
}

type fakeUsers struct {
	users map[string]*entity.User
	err   error
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id string, hash string) error { return nil }

// fakeSessions accepts tokens of the form "token-<userId>"
type fakeSessions struct{}

func (fakeSessions) Verify(token string) (*auth.SessionClaims, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, auth.ErrInvalidToken
	}
	return &auth.SessionClaims{UserID: token[len(prefix):]}, nil
}

type fixture struct {
	bookings   *fakeBookings
	properties *fakeProperties
	profiles   *fakeProfiles
	audits     *fakeAudits
	users      *fakeUsers
	engine     *gin.Engine
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	f := &fixture{
		bookings:   &fakeBookings{listing: &entity.BookingListing{Bookings: []entity.TransformedBooking{}}},
		properties: &fakeProperties{},
		profiles:   &fakeProfiles{},
		audits:     &fakeAudits{},
		users:      &fakeUsers{users: map[string]*entity.User{}},
	}

	h := NewHandler(Options{DefaultSince: "2024-01-01T00:00:00Z"},
		f.bookings, f.properties, f.profiles, f.audits, f.users, fakeSessions{}, logger.NewNopLogger())

	f.engine = gin.New()
	h.RegisterRoutes(f.engine)
	return f
}

// addUser stores a user with role and returns its session cookie value
func (f *fixture) addUser(role string) (*entity.User, string) {
	u := &entity.User{ID: primitive.NewObjectID(), Email: role + "@example.com", FullName: "Test User", Role: role}
	f.users.users[u.ID.Hex()] = u
	return u, "token-" + u.ID.Hex()
}
