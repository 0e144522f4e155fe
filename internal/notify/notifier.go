package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// Service persists in-app notifications and hands email to the dispatcher.
// Failures are logged and never returned.
type Service struct {
	repo booking.NotificationRepository
	mail *MailDispatcher
	log  *zap.Logger
}

var _ booking.Notifier = (*Service)(nil)

func NewService(repo booking.NotificationRepository, mail *MailDispatcher, log *zap.Logger) *Service {
	return &Service{repo: repo, mail: mail, log: log}
}

func (s *Service) Notify(ctx context.Context, recipientID, senderID uint, message, link string) {
	n := &models.Notification{
		RecipientID: recipientID,
		Message:     message,
		Link:        link,
	}
	if senderID != 0 {
		n.SenderID = &senderID
	}

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.log.Warn("store notification",
			zap.Uint("recipient_id", recipientID),
			zap.Error(err),
		)
	}
}

func (s *Service) Email(_ context.Context, to, subject, htmlBody string) {
	if to == "" {
		return
	}
	s.mail.Dispatch(Mail{To: to, Subject: subject, HTML: htmlBody})
}
