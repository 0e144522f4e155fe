package moderation

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/infra/memory"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

var now = time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	rec   *notify.Recorder
	uc    *ModerateUser

	admin    domain.Principal
	target   *models.User
	other    *models.User
	service  *models.Service
	outbound *models.Booking
	inbound  *models.Booking
	past     *models.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	rec := &notify.Recorder{}
	f := &fixture{
		store: store,
		rec:   rec,
		uc: NewModerateUser(store, rec, notify.NewTemplates("http://app.test", time.UTC), nil,
			timezone.FixedClock(now), zap.NewNop()),
	}

	admin := mustUser(t, store, "root", models.RoleAdmin)
	f.admin = domain.Principal{UserID: admin.ID, Role: admin.Role}
	f.target = mustUser(t, store, "target", models.RoleUser)
	f.other = mustUser(t, store, "other", models.RoleUser)

	f.service = &models.Service{OwnerID: f.target.ID, Title: "Lessons", Duration: 60}
	if err := store.CreateService(ctx, f.service); err != nil {
		t.Fatal(err)
	}
	foreign := &models.Service{OwnerID: f.other.ID, Title: "Tutoring", Duration: 60}
	if err := store.CreateService(ctx, foreign); err != nil {
		t.Fatal(err)
	}

	f.inbound = mustBook(t, store, f.service, f.other.ID, now.Add(24*time.Hour))
	f.outbound = mustBook(t, store, foreign, f.target.ID, now.Add(48*time.Hour))
	f.past = mustBook(t, store, f.service, f.other.ID, now.Add(-24*time.Hour))
	return f
}

func mustUser(t *testing.T, store *memory.Store, name, role string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Role: role, Status: models.UserStatusActive}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func mustBook(t *testing.T, store *memory.Store, svc *models.Service, clientID uint, start time.Time) *models.Booking {
	t.Helper()
	b := domain.New(svc, clientID, start, "")
	if err := store.CreateBookingNoOverlap(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	return b
}

func (f *fixture) status(t *testing.T, id uint) string {
	t.Helper()
	b, err := f.store.GetBooking(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return b.Status
}

func TestWarnIncrementsAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		res, err := f.uc.Execute(ctx, f.admin, ModerateUserInput{UserID: f.target.ID, Action: "warn", Reason: "spam"})
		if err != nil {
			t.Fatal(err)
		}
		if res.User.Warnings != i {
			t.Fatalf("warnings = %d, want %d", res.User.Warnings, i)
		}
	}

	notices := f.rec.NoticesFor(f.target.ID)
	if len(notices) != 2 || notices[1].Message != "⚠️ Warning #2: spam" {
		t.Fatalf("notices: %+v", notices)
	}
	mails := f.rec.MailsTo(f.target.Email)
	if len(mails) != 2 || mails[0].Subject != notify.SubjectAccountWarned {
		t.Fatalf("mails: %+v", mails)
	}
	if f.status(t, f.inbound.ID) != string(domain.StatusConfirmed) {
		t.Fatal("warn must not touch bookings")
	}
}

func TestSuspendHidesServicesAndCancelsBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.Execute(ctx, f.admin, ModerateUserInput{UserID: f.target.ID, Action: "suspend"})
	if err != nil {
		t.Fatal(err)
	}
	if res.User.Status != models.UserStatusSuspended {
		t.Fatalf("status %s", res.User.Status)
	}
	if res.CancelledCount != 2 {
		t.Fatalf("cancelled %d, want 2", res.CancelledCount)
	}
	if f.status(t, f.inbound.ID) != string(domain.StatusCancelled) ||
		f.status(t, f.outbound.ID) != string(domain.StatusCancelled) {
		t.Fatal("future bookings on both sides should be cancelled")
	}
	if f.status(t, f.past.ID) != string(domain.StatusConfirmed) {
		t.Fatal("past booking must stay confirmed")
	}

	svc, _ := f.store.GetService(ctx, f.service.ID)
	if !svc.IsDeleted {
		t.Fatal("service should be hidden")
	}

	notices := f.rec.NoticesFor(f.target.ID)
	if len(notices) != 1 || notices[0].Message != "🚫 Your account has been suspended: "+"Violation of community guidelines" {
		t.Fatalf("notices: %+v", notices)
	}
}

func TestActivateRestoresServicesOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.Execute(ctx, f.admin, ModerateUserInput{UserID: f.target.ID, Action: "suspend"}); err != nil {
		t.Fatal(err)
	}
	res, err := f.uc.Execute(ctx, f.admin, ModerateUserInput{UserID: f.target.ID, Action: "activate"})
	if err != nil {
		t.Fatal(err)
	}
	if res.User.Status != models.UserStatusActive {
		t.Fatalf("status %s", res.User.Status)
	}

	svc, _ := f.store.GetService(ctx, f.service.ID)
	if svc.IsDeleted {
		t.Fatal("service should be restored")
	}
	if f.status(t, f.inbound.ID) != string(domain.StatusCancelled) {
		t.Fatal("cancelled bookings stay cancelled")
	}
	if m := f.rec.MailsTo(f.target.Email); len(m) != 2 || m[1].Subject != notify.SubjectAccountReactivated {
		t.Fatalf("mails: %+v", m)
	}
}

func TestModerationGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name      string
		principal domain.Principal
		in        ModerateUserInput
		code      string
	}{
		{"non-admin", domain.Principal{UserID: f.other.ID, Role: models.RoleUser},
			ModerateUserInput{UserID: f.target.ID, Action: "warn"}, httperr.CodeAdminRequired},
		{"unknown action", f.admin,
			ModerateUserInput{UserID: f.target.ID, Action: "ban"}, httperr.CodeInvalidAction},
		{"self", f.admin,
			ModerateUserInput{UserID: f.admin.UserID, Action: "warn"}, httperr.CodeCannotModerateSelf},
		{"missing", f.admin,
			ModerateUserInput{UserID: 4242, Action: "warn"}, httperr.CodeUserNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.uc.Execute(ctx, tc.principal, tc.in); !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("got %v, want %s", err, tc.code)
			}
		})
	}

	peer := mustUser(t, f.store, "peer", models.RoleAdmin)
	if _, err := f.uc.Execute(ctx, f.admin, ModerateUserInput{UserID: peer.ID, Action: "suspend"}); !httperr.IsBusiness(err, httperr.CodeCannotModerateAdmin) {
		t.Fatalf("admin target: %v", err)
	}
}

func TestAdminOverviewExcludesAdmins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adminSvc := &models.Service{OwnerID: f.admin.UserID, Title: "Internal", Duration: 30}
	if err := f.store.CreateService(ctx, adminSvc); err != nil {
		t.Fatal(err)
	}
	if err := f.store.CreateReview(ctx, &models.Review{
		ServiceID: f.service.ID, ClientID: f.other.ID, BookingID: f.past.ID, Rating: 4,
	}); err != nil {
		t.Fatal(err)
	}

	uc := NewAdminOverview(f.store)
	if _, err := uc.Execute(ctx, domain.Principal{UserID: f.other.ID}); !httperr.IsBusiness(err, httperr.CodeAdminRequired) {
		t.Fatalf("non-admin: %v", err)
	}

	ov, err := uc.Execute(ctx, f.admin)
	if err != nil {
		t.Fatal(err)
	}
	if ov.Stats.TotalUsers != 2 || ov.Stats.TotalServices != 2 || ov.Stats.TotalReviews != 1 {
		t.Fatalf("stats %+v", ov.Stats)
	}
	for _, s := range ov.Services {
		if s.ID == adminSvc.ID {
			t.Fatal("admin-owned service listed")
		}
	}
}
