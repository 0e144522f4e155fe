package notify

import (
	"bytes"
	"html/template"
	"time"
)

const (
	SubjectBookingCreated     = "New Booking Received! 💰"
	SubjectBookingCancelled   = "Booking Cancellation Alert ⚠️"
	SubjectScheduleCancelled  = "Booking Cancellation Notice ⚠️"
	SubjectScheduleUpdated    = "Service Schedule Updated ℹ️"
	SubjectServiceRemoved     = "Service No Longer Available ⚠️"
	SubjectAccountWarned      = "Official Warning Alert ⚠️"
	SubjectAccountSuspended   = "Account Suspended 🚫"
	SubjectAccountReactivated = "Account Reactivated ✅"
)

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "card_open"}}<div style="direction: ltr; font-family: sans-serif; text-align: center; padding: 25px; border: 1px solid #e5e7eb; border-radius: 15px;">{{end}}
{{define "button"}}<div style="margin-top: 20px;"><a href="{{.URL}}" style="background-color: #2563eb; color: white; padding: 12px 25px; text-decoration: none; border-radius: 50px; font-weight: bold; display: inline-block;">{{.Label}}</a></div>{{end}}

{{define "booking_created"}}{{template "card_open"}}
<h2 style="color: #10b981;">You have a new booking! ✨</h2>
<p><b>{{.Client}}</b> has booked the service: <b>{{.Title}}</b>.</p>
<p><b>Date &amp; Time:</b> {{.When}}</p>
{{template "button" .Button}}</div>{{end}}

{{define "booking_cancelled"}}{{template "card_open"}}
<h2 style="color: #dc2626;">Booking Cancelled</h2>
<p>Hello <b>{{.Recipient}}</b>, <b>{{.Actor}}</b> canceled the booking for <b>{{.Title}}</b> on {{.When}}.</p>
{{template "button" .Button}}</div>{{end}}

{{define "schedule_cancelled"}}{{template "card_open"}}
<h2 style="color: #dc2626;">Booking Cancelled</h2>
<p>Hello <b>{{.Recipient}}</b>, your booking for <b>{{.Title}}</b> was cancelled due to updated working hours.</p>
{{template "button" .Button}}</div>{{end}}

{{define "schedule_updated"}}{{template "card_open"}}
<h2 style="color: #2563eb;">Schedule Updated</h2>
<p>Hello <b>{{.Recipient}}</b>, the provider of <b>{{.Title}}</b> has updated their working hours.</p>
<p style="color: #6b7280;">Your booking is still confirmed, but we recommend checking the new schedule.</p>
{{template "button" .Button}}</div>{{end}}

{{define "service_removed"}}{{template "card_open"}}
<h2 style="color: #dc2626;">Service Removed</h2>
<p>Hello <b>{{.Recipient}}</b>, <b>{{.Title}}</b> is no longer offered and your booking on {{.When}} was cancelled.</p>
{{template "button" .Button}}</div>{{end}}

{{define "account_warned"}}<div style="max-width: 600px; margin: 20px auto; font-family: sans-serif; border: 1px solid #fde68a; border-radius: 12px; background-color: #fffbeb;">
<div style="background-color: #facc15; padding: 20px; text-align: center;"><h1 style="color: #854d0e; margin: 0;">⚠️ Official Warning</h1></div>
<div style="padding: 30px; color: #451a03;"><p>Hello <strong>{{.Recipient}}</strong>,</p><p>Reason: {{.Reason}}</p><p>Total Warnings: <strong>{{.Warnings}}</strong></p></div></div>{{end}}

{{define "account_suspended"}}<div style="max-width: 600px; margin: 20px auto; font-family: sans-serif; border: 1px solid #fca5a5; border-radius: 12px;">
<div style="background-color: #ef4444; padding: 25px; text-align: center; color: white;"><h1>🚫 Account Suspended</h1></div>
<div style="padding: 30px; background-color: #fef2f2;"><p>Hello <strong>{{.Recipient}}</strong>, your account has been suspended.</p><p>Reason: {{.Reason}}</p></div></div>{{end}}

{{define "account_reactivated"}}<div style="max-width: 600px; margin: 20px auto; font-family: sans-serif; border: 1px solid #bcf0da; border-radius: 12px;">
<div style="background-color: #10b981; padding: 25px; text-align: center; color: white;"><h1>✅ Account Reactivated</h1></div>
<div style="padding: 30px; text-align: center;"><p>Welcome back <strong>{{.Recipient}}</strong>! Your account is active again.</p>
{{template "button" .Button}}</div></div>{{end}}
`))

type button struct {
	URL   string
	Label string
}

type mailData struct {
	Recipient string
	Client    string
	Actor     string
	Title     string
	When      string
	Reason    string
	Warnings  int
	Button    button
}

// Templates renders the HTML bodies of outgoing mail.
type Templates struct {
	appURL string
	loc    *time.Location
}

func NewTemplates(appURL string, loc *time.Location) *Templates {
	if loc == nil {
		loc = time.Local
	}
	return &Templates{appURL: appURL, loc: loc}
}

func (t *Templates) when(ts time.Time) string {
	return ts.In(t.loc).Format("Mon, 02 Jan 2006 15:04")
}

func (t *Templates) render(name string, d mailData) string {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, d); err != nil {
		return template.HTMLEscapeString(d.Title)
	}
	return buf.String()
}

func (t *Templates) BookingCreated(client, title string, start time.Time) string {
	return t.render("booking_created", mailData{
		Client: client,
		Title:  title,
		When:   t.when(start),
		Button: button{URL: t.appURL + "/dashboard/bookings", Label: "📅 Manage Bookings"},
	})
}

func (t *Templates) BookingCancelled(recipient, actor, title string, start time.Time, link string) string {
	return t.render("booking_cancelled", mailData{
		Recipient: recipient,
		Actor:     actor,
		Title:     title,
		When:      t.when(start),
		Button:    button{URL: t.appURL + link, Label: "📅 View Bookings"},
	})
}

func (t *Templates) ScheduleCancelled(recipient, title string) string {
	return t.render("schedule_cancelled", mailData{
		Recipient: recipient,
		Title:     title,
		Button:    button{URL: t.appURL, Label: "📅 Re-book Now"},
	})
}

func (t *Templates) ScheduleUpdated(recipient, title string) string {
	return t.render("schedule_updated", mailData{
		Recipient: recipient,
		Title:     title,
		Button:    button{URL: t.appURL + "/dashboard/my-bookings", Label: "👁️ Review Booking"},
	})
}

func (t *Templates) ServiceRemoved(recipient, title string, start time.Time) string {
	return t.render("service_removed", mailData{
		Recipient: recipient,
		Title:     title,
		When:      t.when(start),
		Button:    button{URL: t.appURL, Label: "🔎 Find Another Service"},
	})
}

func (t *Templates) AccountWarned(recipient, reason string, warnings int) string {
	return t.render("account_warned", mailData{Recipient: recipient, Reason: reason, Warnings: warnings})
}

func (t *Templates) AccountSuspended(recipient, reason string) string {
	return t.render("account_suspended", mailData{Recipient: recipient, Reason: reason})
}

func (t *Templates) AccountReactivated(recipient string) string {
	return t.render("account_reactivated", mailData{
		Recipient: recipient,
		Button:    button{URL: t.appURL + "/login", Label: "Login Now"},
	})
}
