package moderation

import (
	"testing"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

func TestParseAction(t *testing.T) {
	for _, s := range []string{"warn", "suspend", "activate"} {
		if _, err := ParseAction(s); err != nil {
			t.Errorf("%s: %v", s, err)
		}
	}
	for _, s := range []string{"", "ban", "WARN"} {
		if _, err := ParseAction(s); !httperr.IsBusiness(err, httperr.CodeInvalidAction) {
			t.Errorf("%q: got %v", s, err)
		}
	}
}

func TestPlanSuspend(t *testing.T) {
	e, err := Plan(Suspend, "")
	if err != nil {
		t.Fatal(err)
	}
	if e.SetStatus != models.UserStatusSuspended || e.Services != ServicesHidden || !e.CancelFutureBookings {
		t.Fatalf("unexpected suspend plan %+v", e)
	}
	if e.IncrementWarnings {
		t.Fatal("suspend should not add a warning")
	}
	if e.Reason != DefaultReason {
		t.Fatalf("reason %q", e.Reason)
	}
}

func TestPlanActivateRestoresServicesOnly(t *testing.T) {
	e, err := Plan(Activate, "appeal accepted")
	if err != nil {
		t.Fatal(err)
	}
	if e.SetStatus != models.UserStatusActive || e.Services != ServicesRestored {
		t.Fatalf("unexpected activate plan %+v", e)
	}
	if e.CancelFutureBookings {
		t.Fatal("activate must not touch bookings")
	}
	if got := e.Notice(&models.User{}); got != "✅ Your account has been reactivated." {
		t.Fatalf("notice %q", got)
	}
}

func TestPlanWarnNotice(t *testing.T) {
	e, err := Plan(Warn, "spam")
	if err != nil {
		t.Fatal(err)
	}
	if !e.IncrementWarnings || e.SetStatus != "" || e.Services != ServicesUnchanged {
		t.Fatalf("unexpected warn plan %+v", e)
	}
	if got := e.Notice(&models.User{Warnings: 2}); got != "⚠️ Warning #2: spam" {
		t.Fatalf("notice %q", got)
	}
}

func TestPlanUnknown(t *testing.T) {
	if _, err := Plan(Action("ban"), ""); !httperr.IsBusiness(err, httperr.CodeInvalidAction) {
		t.Fatalf("got %v", err)
	}
}
