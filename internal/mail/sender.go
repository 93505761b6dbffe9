package mail

import (
	"errors" // Sentinel errors

	"gopkg.in/gomail.v2" // SMTP client
)

// ErrFailedToSend is returned when the mail transport rejects a message.
// The underlying cause is logged server-side and never exposed to callers.
var ErrFailedToSend = errors.New("failed to send email")

// Message is a single outbound HTML email
type Message struct {
	From    string // Sender address
	To      string // Recipient address
	Subject string // Subject line
	HTML    string // Rendered HTML body
}

// Sender delivers a message; implementations are injected so tests
// can substitute a fake transport
type Sender interface {
	Send(msg Message) error
}

// SMTPConfig holds the transport settings for the SMTP sender
type SMTPConfig struct {
	Host     string // SMTP server host
	Port     int    // SMTP server port
	Username string // SMTP username
	Password string // SMTP password
}

// SMTPSender delivers messages over SMTP using gomail
type SMTPSender struct {
	dialer *gomail.Dialer // Configured SMTP dialer
}

// NewSMTPSender builds an SMTP sender from explicit transport config
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

// Send delivers a single HTML message
func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()                // Build the MIME message
	m.SetHeader("From", msg.From)           // Sender address
	m.SetHeader("To", msg.To)               // Recipient address
	m.SetHeader("Subject", msg.Subject)     // Subject line
	m.SetBody("text/html", msg.HTML)        // HTML body
	return s.dialer.DialAndSend(m)          // Dial and send in one shot
}
