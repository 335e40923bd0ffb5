package mailer

import (
	"gopkg.in/gomail.v2"
)

// Message is a fully rendered email ready for dispatch.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Notifier defines the interface for the outbound mail transport.
type Notifier interface {
	Send(to string, msg Message) error
}

// Config holds the SMTP transport settings.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
}

// client is an SMTP implementation of Notifier.
type client struct {
	dialer      *gomail.Dialer
	fromName    string
	fromAddress string
}

// NewClient creates a new SMTP notifier client.
func NewClient(cfg Config) Notifier {
	return &client{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
	}
}

// Send dispatches a rendered message to a single recipient. Delivery is
// binary: an error means the transport refused the message, nothing more is
// tracked.
func (c *client) Send(to string, msg Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.fromAddress, c.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return c.dialer.DialAndSend(m)
}
