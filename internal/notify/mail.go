package notify

import (
	"sync"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mail struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(m Mail) error
}

// SMTPSender delivers through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, pass, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (s *SMTPSender) Send(m Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)

	return s.dialer.DialAndSend(msg)
}

// LogSender only logs. Used when no SMTP host is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(m Mail) error {
	s.log.Info("email (not sent, smtp disabled)",
		zap.String("to", m.To),
		zap.String("subject", m.Subject),
	)
	return nil
}

// MailDispatcher queues mail for a background worker so request paths never
// wait on SMTP. When the queue is full the message is dropped.
type MailDispatcher struct {
	sender Sender
	log    *zap.Logger
	queue  chan Mail
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewMailDispatcher(sender Sender, log *zap.Logger, buffer int) *MailDispatcher {
	if buffer <= 0 {
		buffer = 100
	}

	d := &MailDispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan Mail, buffer),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *MailDispatcher) worker() {
	defer close(d.done)

	for m := range d.queue {
		if err := d.sender.Send(m); err != nil {
			d.log.Warn("email delivery failed",
				zap.String("to", m.To),
				zap.String("subject", m.Subject),
				zap.Error(err),
			)
		}
	}
}

// Dispatch drops the message once Close has been called.
func (d *MailDispatcher) Dispatch(m Mail) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("mail dispatcher closed, dropping email", zap.String("to", m.To))
		return
	}

	select {
	case d.queue <- m:
	default:
		d.log.Warn("mail queue full, dropping email", zap.String("to", m.To))
	}
}

// Close stops accepting mail and waits for the queue to drain.
func (d *MailDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
