package booking

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/archive"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/infra/lock"
	"github.com/BruksfildServices01/service-booking/internal/infra/memory"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

var now = time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC)

func day(d, hour, minute int) time.Time {
	return time.Date(2030, 3, d, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	store    *memory.Store
	notifier *notify.Recorder

	create *CreateBooking
	cancel *CancelBooking
	hide   *HideBooking
	list   *ListBookings

	provider *models.User
	client   *models.User
	other    *models.User
	service  *models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	rec := &notify.Recorder{}
	clock := timezone.FixedClock(now)
	tpl := notify.NewTemplates("http://app.test", time.UTC)
	log := zap.NewNop()

	f := &fixture{
		store:    store,
		notifier: rec,
		create:   NewCreateBooking(store, lock.NewLocalLocker(), rec, tpl, nil, clock, log),
		cancel:   NewCancelBooking(store, rec, tpl, nil, clock),
		hide:     NewHideBooking(store, NewPurger(store, archive.Noop{}, log), nil),
		list:     NewListBookings(store, clock),
	}

	f.provider = f.user(t, "provider")
	f.client = f.user(t, "client")
	f.other = f.user(t, "other")
	f.service = f.newService(t, f.provider.ID, "Haircut", 60)
	return f
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	if err := f.store.CreateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func (f *fixture) newService(t *testing.T, ownerID uint, title string, duration int) *models.Service {
	t.Helper()
	svc := &models.Service{OwnerID: ownerID, Title: title, Duration: duration}
	if err := f.store.CreateService(context.Background(), svc); err != nil {
		t.Fatal(err)
	}
	return svc
}

func (f *fixture) book(t *testing.T, client *models.User, start time.Time) *models.Booking {
	t.Helper()
	b, err := f.create.Execute(context.Background(), as(client), CreateBookingInput{
		ServiceID: f.service.ID,
		StartTime: start,
	})
	if err != nil {
		t.Fatalf("book %v: %v", start, err)
	}
	return b
}

func as(u *models.User) domain.Principal {
	return domain.Principal{UserID: u.ID, Role: u.Role}
}
