package dto

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

type NotificationDTO struct {
	ID         uint      `json:"id"`
	Message    string    `json:"message"`
	Link       string    `json:"link"`
	IsRead     bool      `json:"is_read"`
	SenderName string    `json:"sender_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type InboxDTO struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int64             `json:"unread_count"`
}

func Notifications(ns []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(ns))
	for i := range ns {
		n := &ns[i]
		d := NotificationDTO{
			ID:        n.ID,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
		if n.Sender != nil {
			d.SenderName = n.Sender.Name
		}
		out = append(out, d)
	}
	return out
}
