package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/kirtansukhadiya/logified-prod/internal/domain"
)

// ReceivedAtLayout formats the submission timestamp in the operator's zone.
const ReceivedAtLayout = "Monday, 2 January 2006 at 3:04 PM MST"

// contactEmailTemplate is the HTML template for contact form emails
const contactEmailTemplate = `<div style="font-family: 'Inter', Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #f8f9fa; padding: 20px;">
  <div style="background: white; border-radius: 10px; overflow: hidden;">
    <div style="background: #0056b3; padding: 30px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px;">{{.SiteName}}</h1>
      <p style="color: #e3f2fd; margin: 10px 0 0 0; font-size: 16px;">New Contact Form Inquiry</p>
    </div>
    <div style="padding: 30px;">
      <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
        <h3 style="color: #333; margin: 0 0 15px 0;">Contact Details</h3>
        <p style="margin: 8px 0; color: #555;"><strong>Name:</strong> {{.Name}}</p>
        <p style="margin: 8px 0; color: #555;"><strong>Email:</strong> <a href="mailto:{{.Email}}" style="color: #007bff;">{{.Email}}</a></p>
        {{- if .Phone}}
        <p style="margin: 8px 0; color: #555;"><strong>Phone:</strong> <a href="tel:{{.Phone}}" style="color: #007bff;">{{.Phone}}</a></p>
        {{- end}}
      </div>
      <div style="border: 1px solid #dee2e6; border-radius: 8px; padding: 20px;">
        <h3 style="color: #333; margin: 0 0 15px 0;">Message</h3>
        <div style="background: #f8f9fa; padding: 15px; border-left: 4px solid #007bff; line-height: 1.6; color: #555;">{{.MessageHTML}}</div>
      </div>
      <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #dee2e6;">
        <p style="color: #666; font-size: 14px; margin: 0;">Received on {{.ReceivedAt}}</p>
        <p style="color: #666; font-size: 12px; margin: 10px 0 0 0;">Sent from {{.SiteName}} contact form</p>
      </div>
    </div>
  </div>
</div>
`

const contactTextTemplate = `{{.SiteName}} - New Contact Form Inquiry
============================================

Contact Details:
Name: {{.Name}}
Email: {{.Email}}
{{if .Phone}}Phone: {{.Phone}}
{{end}}
Message:
{{.Message}}

============================================
Received on: {{.ReceivedAt}}
Sent from {{.SiteName}} contact form
`

type contactEmailData struct {
	SiteName    string
	Name        string
	Email       string
	Phone       string
	Message     string
	MessageHTML template.HTML
	ReceivedAt  string
}

// ContactComposer turns a validated submission into the owner notification.
// It does no I/O; output depends only on the submission and the clock.
type ContactComposer struct {
	siteName string
	loc      *time.Location
	now      func() time.Time
	html     *template.Template
	text     *texttemplate.Template
	// keeps only the <br> tags inserted for line breaks
	policy *bluemonday.Policy
}

func NewContactComposer(siteName string, loc *time.Location) *ContactComposer {
	if loc == nil {
		loc = time.Local
	}
	policy := bluemonday.NewPolicy()
	policy.AllowElements("br")

	return &ContactComposer{
		siteName: siteName,
		loc:      loc,
		now:      time.Now,
		html:     template.Must(template.New("contact_html").Parse(contactEmailTemplate)),
		text:     texttemplate.Must(texttemplate.New("contact_text").Parse(contactTextTemplate)),
		policy:   policy,
	}
}

// WithClock replaces the time source. Used by tests.
func (c *ContactComposer) WithClock(now func() time.Time) *ContactComposer {
	c.now = now
	return c
}

func (c *ContactComposer) Compose(sub *domain.ContactSubmission) (*domain.NotificationPayload, error) {
	data := contactEmailData{
		SiteName:    c.siteName,
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Message:     sub.Message,
		MessageHTML: c.messageHTML(sub.Message),
		ReceivedAt:  c.now().In(c.loc).Format(ReceivedAtLayout),
	}

	var html bytes.Buffer
	if err := c.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	var text bytes.Buffer
	if err := c.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to execute text template: %w", err)
	}

	return &domain.NotificationPayload{
		Subject:  fmt.Sprintf("New Inquiry from %s - %s", sub.Name, c.siteName),
		HTMLBody: html.String(),
		TextBody: text.String(),
		ReplyTo:  sub.Email,
	}, nil
}

// messageHTML escapes the message and turns line breaks into <br>.
func (c *ContactComposer) messageHTML(message string) template.HTML {
	escaped := template.HTMLEscapeString(message)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(c.policy.Sanitize(escaped))
}
