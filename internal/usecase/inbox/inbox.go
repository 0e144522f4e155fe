package inbox

import (
	"context"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/dto"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
)

const PageSize = 10

// Inbox serves the caller's in-app notifications.
type Inbox struct {
	repo domain.NotificationRepository
}

func New(repo domain.NotificationRepository) *Inbox {
	return &Inbox{repo: repo}
}

// List returns the latest notifications with the total unread count.
func (uc *Inbox) List(ctx context.Context, principal domain.Principal) (*dto.InboxDTO, error) {
	ns, err := uc.repo.ListNotifications(ctx, principal.UserID, PageSize)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.InboxDTO{Notifications: dto.Notifications(ns), UnreadCount: unread}, nil
}

func (uc *Inbox) MarkAllRead(ctx context.Context, principal domain.Principal) error {
	return uc.repo.MarkAllRead(ctx, principal.UserID)
}

// Delete removes one of the caller's notifications. Someone else's id reads
// as not found.
func (uc *Inbox) Delete(ctx context.Context, principal domain.Principal, id uint) error {
	ok, err := uc.repo.DeleteNotification(ctx, id, principal.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrNotFound(httperr.CodeNotificationNotFound)
	}
	return nil
}
