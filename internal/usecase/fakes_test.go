package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"
	"rental-service/internal/domain/repository"
	"rental-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test", prometheus.NewRegistry())
}

type fakeOwnerRez struct {
	mu sync.Mutex

	page        *entity.BookingPage
	bookingsErr error
	guests      []entity.Guest
	guestsErr   error
	// guestsWait blocks FetchGuests until the context is cancelled
	guestsWait bool

	property    *entity.RemoteProperty
	propertyErr error

	updateResp json.RawMessage
	updateErr  error

	guestUpdates   []entity.GuestUpdate
	guestUpdateIDs []int64
	guestErr       error
}

func (f *fakeOwnerRez) FetchBookings(ctx context.Context, query entity.BookingQuery) (*entity.BookingPage, error) {
	if f.bookingsErr != nil {
		return nil, f.bookingsErr
	}
	return f.page, nil
}

func (f *fakeOwnerRez) FetchGuests(ctx context.Context, createdSince string) ([]entity.Guest, error) {
	if f.guestsWait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.guestsErr != nil {
		return nil, f.guestsErr
	}
	return f.guests, nil
}

func (f *fakeOwnerRez) GetProperty(ctx context.Context, id string) (*entity.RemoteProperty, error) {
	if f.propertyErr != nil {
		return nil, f.propertyErr
	}
	return f.property, nil
}

func (f *fakeOwnerRez) UpdateProperty(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResp, nil
}

func (f *fakeOwnerRez) UpdateGuest(ctx context.Context, guestID int64, update entity.GuestUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guestUpdateIDs = append(f.guestUpdateIDs, guestID)
	f.guestUpdates = append(f.guestUpdates, update)
	return f.guestErr
}

type fakePropertyRepo struct {
	byID     map[int64]*entity.LocalProperty
	findErr  error
	touched  map[int64]time.Time
	upserted []*entity.LocalPropertyInput
}

func (f *fakePropertyRepo) FindByOwnerRezID(ctx context.Context, id int64) (*entity.LocalProperty, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byID[id], nil
}

func (f *fakePropertyRepo) UpsertByOwnerRezID(ctx context.Context, id int64, input *entity.LocalPropertyInput) (*entity.LocalProperty, error) {
	f.upserted = append(f.upserted, input)
	return &entity.LocalProperty{OwnerRezID: id, Description: input.Description, Status: input.Status}, nil
}

func (f *fakePropertyRepo) TouchSyncedAt(ctx context.Context, id int64, at time.Time) error {
	if f.touched == nil {
		f.touched = make(map[int64]time.Time)
	}
	f.touched[id] = at
	return nil
}

type fakeUserRepo struct {
	users     map[string]*entity.User
	updates   []map[string]interface{}
	passwords map[string]string
	// dropAfterUpdate removes the user once it has been updated
	dropAfterUpdate bool
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	u, ok := f.users[id]
	if !ok {
		return &apperror.NotFoundError{Resource: "User", ID: id}
	}
	f.updates = append(f.updates, fields)
	if v, ok := fields["fullName"].(string); ok {
		u.FullName = v
	}
	if v, ok := fields["phone"].(string); ok {
		u.Phone = v
	}
	if v, ok := fields["dob"].(string); ok {
		u.Dob = v
	}
	if v, ok := fields["mailingAddress"].(string); ok {
		u.MailingAddress = v
	}
	if f.dropAfterUpdate {
		delete(f.users, id)
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	if _, ok := f.users[id]; !ok {
		return &apperror.NotFoundError{Resource: "User", ID: id}
	}
	if f.passwords == nil {
		f.passwords = make(map[string]string)
	}
	f.passwords[id] = hash
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	records []*entity.SyncAudit
}

func (f *fakeAuditRepo) Record(ctx context.Context, audit *entity.SyncAudit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *audit
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeAuditRepo) RecentFailures(ctx context.Context, limit int) ([]*entity.SyncAudit, error) {
	var out []*entity.SyncAudit
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if !f.records[i].Success {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

type fakeThumbnailProvider struct {
	calls    int
	requests []repository.ThumbnailRequest
	result   map[string]entity.Thumbnails
	err      error
	wait     bool
}

func (f *fakeThumbnailProvider) EnsureThumbnails(ctx context.Context, requests []repository.ThumbnailRequest) (map[string]entity.Thumbnails, error) {
	f.calls++
	f.requests = append(f.requests, requests...)
	if f.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func remoteProperty(t interface{ Fatalf(string, ...interface{}) }, raw string) *entity.RemoteProperty {
	var p entity.RemoteProperty
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("bad remote property fixture: %v", err)
	}
	return &p
}
