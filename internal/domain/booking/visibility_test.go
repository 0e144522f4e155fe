package booking

import (
	"testing"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

func TestVisibilityTransitions(t *testing.T) {
	cases := []struct {
		from  Visibility
		party Party
		want  Visibility
	}{
		{Visible, PartyClient, HiddenByClient},
		{Visible, PartyProvider, HiddenByProvider},
		{HiddenByClient, PartyProvider, Purged},
		{HiddenByProvider, PartyClient, Purged},
		{HiddenByClient, PartyClient, HiddenByClient},
		{HiddenByProvider, PartyProvider, HiddenByProvider},
		{Purged, PartyClient, Purged},
		{Visible, PartyNone, Visible},
	}

	for _, tc := range cases {
		if got := tc.from.Next(tc.party); got != tc.want {
			t.Errorf("%v + party %d = %v, want %v", tc.from, tc.party, got, tc.want)
		}
	}
}

func TestHideMatchesStateMachine(t *testing.T) {
	b := &models.Booking{
		ClientID:             1,
		ProviderID:           2,
		StatusCustomerDelete: models.FlagNo,
		StatusAdminDelete:    models.FlagNo,
	}

	state := VisibilityOf(b)
	for _, p := range []Party{PartyOf(b, 2), PartyOf(b, 1)} {
		want := state.Next(p)
		state = Hide(b, p)
		if state != want {
			t.Fatalf("Hide = %v, state machine says %v", state, want)
		}
	}

	if state != Purged {
		t.Fatalf("final state %v, want purged", state)
	}
	if b.StatusAdminDelete != models.FlagYes || b.StatusCustomerDelete != models.FlagYes {
		t.Fatalf("flags not set: %+v", b)
	}
}

func TestPartyOf(t *testing.T) {
	b := &models.Booking{ClientID: 1, ProviderID: 2}

	if PartyOf(b, 1) != PartyClient || PartyOf(b, 2) != PartyProvider || PartyOf(b, 3) != PartyNone {
		t.Fatal("party resolution wrong")
	}
	if Counterpart(b, PartyClient) != 2 || Counterpart(b, PartyProvider) != 1 {
		t.Fatal("counterpart wrong")
	}

	self := &models.Booking{ClientID: 5, ProviderID: 5}
	if PartyOf(self, 5) != PartyClient {
		t.Fatal("self booking should resolve to client")
	}
}
