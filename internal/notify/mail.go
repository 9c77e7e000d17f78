package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// MailConfig configures the SMTP channel. Port 465 uses implicit TLS.
type MailConfig struct {
	Server     string
	Port       int
	Sender     string
	User       string
	Password   string
	Recipients []string
}

// Mailer delivers messages over SMTP.
type Mailer struct {
	cfg  MailConfig
	dial func(ctx context.Context, cfg MailConfig, msg *mail.Msg) error
}

// NewMailer validates cfg and returns an SMTP channel. Without recipients
// the sender mails itself.
func NewMailer(cfg MailConfig) (*Mailer, error) {
	if cfg.Server == "" {
		return nil, errors.New("mail server is empty")
	}
	if cfg.Sender == "" {
		return nil, errors.New("mail sender is empty")
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	if len(cfg.Recipients) == 0 {
		cfg.Recipients = []string{cfg.Sender}
	}
	return &Mailer{cfg: cfg, dial: dialAndSend}, nil
}

// Name implements Channel.
func (m *Mailer) Name() string { return "mail" }

// Build creates the message for msg.
func (m *Mailer) Build(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.From(m.cfg.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := out.To(m.cfg.Recipients...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetMessageID()
	out.SetDate()
	out.SetGenHeader(mail.HeaderXMailer, "movierec")
	out.SetBodyString(mail.TypeTextPlain, msg.Text)
	return out, nil
}

// Deliver implements Channel.
func (m *Mailer) Deliver(ctx context.Context, msg Message) error {
	out, err := m.Build(msg)
	if err != nil {
		return err
	}
	if err := m.dial(ctx, m.cfg, out); err != nil {
		return fmt.Errorf("mail failed: %w", err)
	}
	return nil
}

func dialAndSend(ctx context.Context, cfg MailConfig, msg *mail.Msg) error {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Server, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
