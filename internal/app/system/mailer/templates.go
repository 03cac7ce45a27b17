// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
	"time"
)

// ContactNotificationData carries a contact-form submission into the
// site-owner notification email.
type ContactNotificationData struct {
	Name        string
	Email       string
	Subject     string
	Message     string
	ProjectType string
	Reference   string
	SubmittedAt time.Time
}

var contactNotificationTmpl = template.Must(template.New("contact-notification").Parse(`<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>New contact form submission</h2>
  <table cellpadding="4">
    <tr><td><b>From</b></td><td>{{.Name}} &lt;{{.Email}}&gt;</td></tr>
    <tr><td><b>Subject</b></td><td>{{.Subject}}</td></tr>
    {{if .ProjectType}}<tr><td><b>Project type</b></td><td>{{.ProjectType}}</td></tr>{{end}}
    <tr><td><b>Reference</b></td><td>{{.Reference}}</td></tr>
    <tr><td><b>Received</b></td><td>{{.SubmittedAt.Format "2006-01-02 15:04 MST"}}</td></tr>
  </table>
  <h3>Message</h3>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</body>
</html>`))

// ContactNotificationEmail renders the email sent to the site owner
// when someone submits the contact form.
func ContactNotificationEmail(data ContactNotificationData) (textBody, htmlBody string) {
	textBody = "New contact form submission\n\n" +
		"From: " + data.Name + " <" + data.Email + ">\n" +
		"Subject: " + data.Subject + "\n"
	if data.ProjectType != "" {
		textBody += "Project type: " + data.ProjectType + "\n"
	}
	textBody += "Reference: " + data.Reference + "\n\n" +
		data.Message

	var buf bytes.Buffer
	contactNotificationTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// ContactConfirmationData carries the fields for the auto-reply sent
// back to the submitter.
type ContactConfirmationData struct {
	Name      string
	Subject   string
	Reference string
	OwnerName string
}

var contactConfirmationTmpl = template.Must(template.New("contact-confirmation").Parse(`<html>
<body style="font-family: sans-serif; color: #222;">
  <p>Hi {{.Name}},</p>
  <p>Thanks for reaching out about &quot;{{.Subject}}&quot;. Your message has been
  received and I'll get back to you as soon as I can.</p>
  <p>If you need to follow up, quote reference <b>{{.Reference}}</b>.</p>
  <p>&mdash; {{.OwnerName}}</p>
</body>
</html>`))

// ContactConfirmationEmail renders the auto-reply confirming receipt of
// a contact-form submission.
func ContactConfirmationEmail(data ContactConfirmationData) (textBody, htmlBody string) {
	textBody = "Hi " + data.Name + ",\n\n" +
		"Thanks for reaching out about \"" + data.Subject + "\". Your message has been " +
		"received and I'll get back to you as soon as I can.\n\n" +
		"If you need to follow up, quote reference " + data.Reference + ".\n\n" +
		"- " + data.OwnerName

	var buf bytes.Buffer
	contactConfirmationTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}
