package email

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	mail "github.com/wneessen/go-mail"
)

// sendTimeout bounds a single SMTP delivery, dial included.
const sendTimeout = 30 * time.Second

// SMTPOptions carries the connection and envelope settings for SMTP delivery.
type SMTPOptions struct {
	Host        string
	Port        int
	Username    string
	Password    string
	UseTLS      bool
	SenderEmail string
	SenderName  string
}

// SMTPSender delivers newsletters over SMTP.
type SMTPSender struct {
	opts SMTPOptions
}

// NewSMTPSender returns a Sender backed by the given SMTP server.
func NewSMTPSender(opts SMTPOptions) *SMTPSender {
	return &SMTPSender{opts: opts}
}

// Send delivers one HTML message. Each call opens its own connection so a
// stalled server cannot poison later deliveries.
func (s *SMTPSender) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	tlsPolicy := mail.TLSOpportunistic
	if s.opts.UseTLS {
		tlsPolicy = mail.TLSMandatory
	}

	clientOpts := []mail.Option{
		mail.WithPort(s.opts.Port),
		mail.WithTimeout(sendTimeout),
		mail.WithTLSPolicy(tlsPolicy),
	}
	if s.opts.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.opts.Username),
			mail.WithPassword(s.opts.Password),
		)
	}

	client, err := mail.NewClient(s.opts.Host, clientOpts...)
	if err != nil {
		return fmt.Errorf("configuring smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.opts.SenderName, s.opts.SenderEmail); err != nil {
		return fmt.Errorf("setting sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("setting recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	msg.SetGenHeader(mail.HeaderXMailer, "medialetter")
	msg.SetGenHeader("X-Entity-Ref-ID", uuid.NewString())

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending to %s: %w", recipient, err)
	}
	return nil
}
