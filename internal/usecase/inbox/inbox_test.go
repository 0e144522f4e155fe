package inbox

import (
	"context"
	"fmt"
	"testing"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/infra/memory"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

func seed(t *testing.T) (*memory.Store, *models.User, *models.User) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	me := &models.User{Name: "me", Email: "me@example.com"}
	other := &models.User{Name: "other", Email: "other@example.com"}
	for _, u := range []*models.User{me, other} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 12; i++ {
		n := &models.Notification{RecipientID: me.ID, SenderID: &other.ID, Message: fmt.Sprintf("msg %d", i)}
		if err := store.CreateNotification(ctx, n); err != nil {
			t.Fatal(err)
		}
	}
	return store, me, other
}

func TestListShowsLatestPage(t *testing.T) {
	store, me, _ := seed(t)
	uc := New(store)

	box, err := uc.List(context.Background(), domain.Principal{UserID: me.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(box.Notifications) != PageSize {
		t.Fatalf("got %d notifications", len(box.Notifications))
	}
	if box.UnreadCount != 12 {
		t.Fatalf("unread %d", box.UnreadCount)
	}
	if box.Notifications[0].Message != "msg 11" {
		t.Fatalf("newest first, got %q", box.Notifications[0].Message)
	}
	if box.Notifications[0].SenderName != "other" {
		t.Fatalf("sender %q", box.Notifications[0].SenderName)
	}
}

func TestMarkAllReadAndDelete(t *testing.T) {
	store, me, other := seed(t)
	uc := New(store)
	ctx := context.Background()
	p := domain.Principal{UserID: me.ID}

	if err := uc.MarkAllRead(ctx, p); err != nil {
		t.Fatal(err)
	}
	box, _ := uc.List(ctx, p)
	if box.UnreadCount != 0 {
		t.Fatalf("unread %d", box.UnreadCount)
	}

	id := box.Notifications[0].ID
	if err := uc.Delete(ctx, domain.Principal{UserID: other.ID}, id); !httperr.IsBusiness(err, httperr.CodeNotificationNotFound) {
		t.Fatalf("foreign delete: %v", err)
	}
	if err := uc.Delete(ctx, p, id); err != nil {
		t.Fatal(err)
	}
	if err := uc.Delete(ctx, p, id); !httperr.IsBusiness(err, httperr.CodeNotificationNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}
