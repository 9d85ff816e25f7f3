package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/xavierca1/sba-tracking/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templates embed.FS

var submissionTemplate = template.Must(template.ParseFS(templates, "templates/submission.html"))

// NewEmailSender sends new-submission alerts from `from` to the sales inbox `to`.
func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// Configured is false when no SMTP host or recipient was provided.
func (s *EmailSender) Configured() bool {
	return s != nil && s.Host != "" && s.To != ""
}

func (s *EmailSender) NotifySubmission(ctx context.Context, payload queue.SubmissionPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderSubmission(payload)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Reply-To", payload.Email)
	m.SetHeader("Subject", fmt.Sprintf("New strategy call application: %s", payload.Name))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}

func renderSubmission(payload queue.SubmissionPayload) (string, error) {
	data := SubmissionEmailData{
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		EventID:     payload.EventID,
		ReviewURL:   payload.ReviewURL,
		SubmittedAt: payload.SubmittedAt.UTC().Format("Jan 2, 2006 15:04 MST"),
	}

	var body bytes.Buffer
	if err := submissionTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return body.String(), nil
}
