package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/See2Code/transport-platform-sub000/models"
)

const displayTimeFormat = "02.01.2006 15:04"

// transportEventLabels maps the transport event type to its display label.
var transportEventLabels = map[models.TransportEventType]string{
	models.TransportEventLoading:   "Nakládka",
	models.TransportEventUnloading: "Vykládka",
}

const emailShell = `
{{define "header"}}<!DOCTYPE html>
<html lang="sk">
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0">
<tr><td align="center" style="padding:24px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
<tr><td style="background-color:#1a2b49;padding:16px 24px;">
<span style="color:#ffffff;font-size:18px;font-weight:bold;">Transport Platform</span>
</td></tr>
<tr><td style="padding:24px;color:#333333;font-size:14px;line-height:1.6;">{{end}}

{{define "footer"}}</td></tr>
<tr><td style="background-color:#f4f5f7;padding:16px 24px;color:#8a8f98;font-size:12px;">
Táto správa bola odoslaná automaticky, neodpovedajte na ňu.
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>{{end}}

{{define "businessCase"}}{{template "header" .}}
<p>{{.Salutation}}</p>
<p>pripomíname Vám obchodný prípad <strong>{{.CompanyLabel}}</strong>.</p>
<p>Termín pripomienky: <strong>{{.ReminderTime}}</strong></p>
<p>Poznámka: {{.Note}}</p>
<p><a href="{{.Link}}" style="color:#1a73e8;">Otvoriť obchodný prípad</a></p>
{{template "footer" .}}{{end}}

{{define "transport"}}{{template "header" .}}
<p>{{.Salutation}}</p>
<p>pripomíname Vám udalosť <strong>{{.EventLabel}}</strong> k objednávke <strong>{{.OrderNumber}}</strong>.</p>
<p>Adresa: {{.Address}}</p>
<p>Čas udalosti: <strong>{{.EventTime}}</strong></p>
<p>Termín pripomienky: {{.ReminderTime}}</p>
<p>Poznámka: {{.Note}}</p>
<p><a href="{{.Link}}" style="color:#1a73e8;">Otvoriť sledované prepravy</a></p>
{{template "footer" .}}{{end}}
`

// Renderer turns a reminder into the subject and HTML body of its
// notification e-mail. It is pure: no I/O, deterministic for a given input.
type Renderer struct {
	baseURL string
	loc     *time.Location
	tmpl    *template.Template
}

// NewRenderer builds a renderer. baseURL is the web application root used
// for deep links; loc fixes the timezone of every displayed date.
func NewRenderer(baseURL string, loc *time.Location) *Renderer {
	return &Renderer{
		baseURL: baseURL,
		loc:     loc,
		tmpl:    template.Must(template.New("email").Parse(emailShell)),
	}
}

type businessCaseData struct {
	Salutation   string
	CompanyLabel string
	ReminderTime string
	Note         string
	Link         string
}

type transportData struct {
	Salutation   string
	EventLabel   string
	OrderNumber  string
	Address      string
	EventTime    string
	ReminderTime string
	Note         string
	Link         string
}

// Render validates the reminder and produces the e-mail subject and HTML
// body. Missing optional fields are replaced with neutral placeholders;
// missing required fields are an error, never a silent send.
func (r *Renderer) Render(reminder *models.Reminder) (subject, html string, err error) {
	if err := reminder.Validate(); err != nil {
		return "", "", err
	}

	switch reminder.Kind {
	case models.ReminderKindBusinessCase:
		return r.renderBusinessCase(reminder)
	case models.ReminderKindTransport:
		return r.renderTransport(reminder)
	}
	return "", "", fmt.Errorf("render: %w: %q", models.ErrUnknownKind, reminder.Kind)
}

func (r *Renderer) renderBusinessCase(reminder *models.Reminder) (string, string, error) {
	companyLabel := reminder.CompanyName
	if companyLabel == "" {
		companyLabel = "obchodný prípad č. " + reminder.BusinessCaseID
	}

	data := businessCaseData{
		Salutation:   salutation(reminder.ContactPerson),
		CompanyLabel: companyLabel,
		ReminderTime: r.formatTime(reminder.ReminderDateTime),
		Note:         noteOrPlaceholder(reminder.ReminderNote),
		Link:         fmt.Sprintf("%s/business-cases/%s", r.baseURL, reminder.BusinessCaseID),
	}

	body, err := r.execute("businessCase", data)
	if err != nil {
		return "", "", err
	}

	subject := "Pripomienka: " + companyLabel
	return subject, body, nil
}

func (r *Renderer) renderTransport(reminder *models.Reminder) (string, string, error) {
	eventLabel := transportEventLabels[reminder.Type]

	data := transportData{
		Salutation:   salutation(reminder.ContactPerson),
		EventLabel:   eventLabel,
		OrderNumber:  reminder.OrderNumber,
		Address:      reminder.Address,
		EventTime:    r.formatTime(*reminder.DateTime),
		ReminderTime: r.formatTime(reminder.ReminderDateTime),
		Note:         noteOrPlaceholder(reminder.ReminderNote),
		Link:         r.baseURL + "/tracked-transports",
	}

	body, err := r.execute("transport", data)
	if err != nil {
		return "", "", err
	}

	subject := fmt.Sprintf("Pripomienka: %s – objednávka %s", eventLabel, reminder.OrderNumber)
	return subject, body, nil
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("error rendering %s template: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) formatTime(t time.Time) string {
	return t.In(r.loc).Format(displayTimeFormat)
}

func salutation(contact *models.ContactPerson) string {
	if contact != nil && contact.FirstName != "" {
		return fmt.Sprintf("Dobrý deň, %s,", contact.FirstName)
	}
	return "Dobrý deň,"
}

func noteOrPlaceholder(note string) string {
	if note == "" {
		return "bez poznámky"
	}
	return note
}
