package mail

import "gopkg.in/gomail.v2"

type SubmissionEmailData struct {
	Name        string
	Email       string
	Phone       string
	EventID     string
	ReviewURL   string
	SubmittedAt string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string

	dialer dialer
}
