package notify

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
)

type Notice struct {
	RecipientID uint
	SenderID    uint
	Message     string
	Link        string
}

// Recorder keeps everything it is asked to deliver. It backs tests and
// local runs that should not touch a mail server.
type Recorder struct {
	mu      sync.Mutex
	Notices []Notice
	Mails   []Mail
}

var _ booking.Notifier = (*Recorder)(nil)

func (r *Recorder) Notify(_ context.Context, recipientID, senderID uint, message, link string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, Notice{recipientID, senderID, message, link})
}

func (r *Recorder) Email(_ context.Context, to, subject, htmlBody string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Mails = append(r.Mails, Mail{To: to, Subject: subject, HTML: htmlBody})
}

// NoticesFor returns the notices addressed to recipientID.
func (r *Recorder) NoticesFor(recipientID uint) []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Notice
	for _, n := range r.Notices {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

// MailsTo returns the mails addressed to to.
func (r *Recorder) MailsTo(to string) []Mail {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Mail
	for _, m := range r.Mails {
		if m.To == to {
			out = append(out, m)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices, r.Mails = nil, nil
}
