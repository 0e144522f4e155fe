package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/infra/lock"
	"github.com/BruksfildServices01/service-booking/internal/notify"
)

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, f.client, day(10, 10, 0))

	if b.ProviderID != f.provider.ID || b.ClientID != f.client.ID {
		t.Fatalf("parties wrong: %+v", b)
	}
	if !b.EndTime.Equal(day(10, 11, 0)) {
		t.Fatalf("end = %v, want start + 60m", b.EndTime)
	}
	if b.Status != "confirmed" {
		t.Fatalf("status = %s", b.Status)
	}

	notices := f.notifier.NoticesFor(f.provider.ID)
	if len(notices) != 1 {
		t.Fatalf("provider got %d notices", len(notices))
	}
	if notices[0].Message != "New Booking: client has booked the Haircut service" || notices[0].Link != LinkProviderBookings {
		t.Fatalf("unexpected notice %+v", notices[0])
	}
	mails := f.notifier.MailsTo(f.provider.Email)
	if len(mails) != 1 || mails[0].Subject != notify.SubjectBookingCreated {
		t.Fatalf("unexpected mails %+v", mails)
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, f.client, day(10, 10, 0))

	cases := []struct {
		name  string
		start time.Time
		want  error
	}{
		{"same slot", day(10, 10, 0), httperr.ErrSlotConflict()},
		{"overlapping start", day(10, 10, 30), httperr.ErrSlotConflict()},
		{"overlapping end", day(10, 9, 30), httperr.ErrSlotConflict()},
		{"adjacent after", day(10, 11, 0), nil},
		{"adjacent before", day(10, 9, 0), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, as(f.other), CreateBookingInput{ServiceID: f.service.ID, StartTime: tc.start})
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, httperr.CodeSlotConflict) {
				t.Fatalf("got %v, want slot conflict", err)
			}
		})
	}
}

func TestCreateBookingAfterCancelReusesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, f.client, day(10, 10, 0))
	if _, err := f.cancel.Execute(ctx, as(f.client), b.ID); err != nil {
		t.Fatal(err)
	}

	f.book(t, f.other, day(10, 10, 0))
}

func TestCreateBookingDisjointAlwaysSucceeds(t *testing.T) {
	f := newFixture(t)

	// Outside the 09:00-17:00 window: working hours only drive the
	// schedule cascade, not creation.
	f.book(t, f.client, day(10, 20, 0))
	f.book(t, f.client, day(10, 6, 0))
}

func TestCreateBookingRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, as(f.provider), CreateBookingInput{ServiceID: f.service.ID, StartTime: day(10, 10, 0)})
	if !httperr.IsBusiness(err, httperr.CodeSelfBooking) {
		t.Fatalf("self booking: got %v", err)
	}

	f.create.AllowSelfBooking = true
	if _, err := f.create.Execute(ctx, as(f.provider), CreateBookingInput{ServiceID: f.service.ID, StartTime: day(10, 10, 0)}); err != nil {
		t.Fatalf("self booking allowed: %v", err)
	}

	_, err = f.create.Execute(ctx, as(f.client), CreateBookingInput{ServiceID: 999, StartTime: day(10, 12, 0)})
	if !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		t.Fatalf("missing service: got %v", err)
	}

	f.service.IsDeleted = true
	if err := f.store.UpdateService(ctx, f.service); err != nil {
		t.Fatal(err)
	}
	_, err = f.create.Execute(ctx, as(f.client), CreateBookingInput{ServiceID: f.service.ID, StartTime: day(10, 12, 0)})
	if !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		t.Fatalf("deleted service: got %v", err)
	}

	_, err = f.create.Execute(ctx, as(f.client), CreateBookingInput{ServiceID: f.service.ID})
	if !httperr.IsBusiness(err, httperr.CodeInvalidRequest) {
		t.Fatalf("missing start: got %v", err)
	}
}

type busyLocker struct{}

func (busyLocker) Lock(context.Context, uint) (func(), error) {
	return nil, lock.ErrLockTimeout
}

func TestCreateBookingBusyLockIsConflict(t *testing.T) {
	f := newFixture(t)
	f.create.locker = busyLocker{}

	_, err := f.create.Execute(context.Background(), as(f.client), CreateBookingInput{
		ServiceID: f.service.ID,
		StartTime: day(10, 10, 0),
	})
	if !httperr.IsBusiness(err, httperr.CodeSlotConflict) {
		t.Fatalf("got %v, want slot conflict", err)
	}
	if bs, _ := f.list.Mine(context.Background(), as(f.client)); len(bs) != 0 {
		t.Fatalf("%d bookings stored", len(bs))
	}
}

func TestCreateBookingConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
		other     []error
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.create.Execute(ctx, as(f.client), CreateBookingInput{
				ServiceID: f.service.ID,
				StartTime: day(12, 14, 0),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case httperr.IsBusiness(err, httperr.CodeSlotConflict):
				conflicts++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	if len(other) > 0 {
		t.Fatalf("unexpected errors: %v", errors.Join(other...))
	}
	if succeeded != 1 || conflicts != attempts-1 {
		t.Fatalf("succeeded=%d conflicts=%d", succeeded, conflicts)
	}

	active, err := f.store.ListActiveBookingsForService(ctx, f.service.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 {
		t.Fatalf("%d active bookings, want 1", len(active))
	}
}

func TestIsSlotFree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	checker := NewSlotChecker(f.store)

	f.book(t, f.client, day(10, 10, 0))

	free, err := checker.IsSlotFree(ctx, f.service.ID, day(10, 11, 0), day(10, 12, 0))
	if err != nil || !free {
		t.Fatalf("adjacent slot: free=%v err=%v", free, err)
	}
	free, err = checker.IsSlotFree(ctx, f.service.ID, day(10, 10, 59), day(10, 11, 30))
	if err != nil || free {
		t.Fatalf("overlapping slot: free=%v err=%v", free, err)
	}
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, f.client, day(10, 10, 0))
	f.notifier.Reset()

	got, err := f.cancel.Execute(ctx, as(f.client), b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "cancelled" || got.CancelledAt == nil {
		t.Fatalf("not cancelled: %+v", got)
	}

	stored, _ := f.store.GetBooking(ctx, b.ID)
	if stored.Status != "cancelled" {
		t.Fatalf("stored status %s", stored.Status)
	}

	notices := f.notifier.NoticesFor(f.provider.ID)
	if len(notices) != 1 || notices[0].Message != `client canceled the booking for "Haircut"` || notices[0].Link != LinkProviderBookings {
		t.Fatalf("unexpected provider notices %+v", notices)
	}

	_, err = f.cancel.Execute(ctx, as(f.client), b.ID)
	if !httperr.IsBusiness(err, httperr.CodeInvalidState) {
		t.Fatalf("second cancel: %v", err)
	}
}

func TestCancelBookingByProviderNotifiesClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, f.client, day(10, 10, 0))
	f.notifier.Reset()

	if _, err := f.cancel.Execute(ctx, as(f.provider), b.ID); err != nil {
		t.Fatal(err)
	}

	notices := f.notifier.NoticesFor(f.client.ID)
	if len(notices) != 1 || notices[0].Link != LinkClientBookings {
		t.Fatalf("unexpected client notices %+v", notices)
	}
	mails := f.notifier.MailsTo(f.client.Email)
	if len(mails) != 1 || !strings.Contains(mails[0].HTML, "provider") {
		t.Fatalf("unexpected mails %+v", mails)
	}
}

func TestCancelBookingStrangerGetsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, f.client, day(10, 10, 0))

	if _, err := f.cancel.Execute(ctx, as(f.other), b.ID); !httperr.IsBusiness(err, httperr.CodeBookingNotFound) {
		t.Fatalf("stranger: got %v", err)
	}
	if _, err := f.cancel.Execute(ctx, as(f.client), 9999); !httperr.IsBusiness(err, httperr.CodeBookingNotFound) {
		t.Fatalf("missing: got %v", err)
	}
}

func TestCancelLeavesOtherBookingsAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b1 := f.book(t, f.client, day(10, 10, 0))
	b2 := f.book(t, f.other, day(10, 12, 0))

	if _, err := f.cancel.Execute(ctx, as(f.client), b1.ID); err != nil {
		t.Fatal(err)
	}

	stored, _ := f.store.GetBooking(ctx, b2.ID)
	if stored.Status != "confirmed" {
		t.Fatalf("unrelated booking changed to %s", stored.Status)
	}
}
