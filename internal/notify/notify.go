// Package notify tells the user a long job has finished, by mail, desktop
// notification or both.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
)

// Default texts used when the caller passes none.
const (
	DefaultText          = "default text"
	DefaultSubject       = "Sent from movierec"
	DefaultSection       = "<3"
	DefaultStatusSubject = "movierec status update"
)

// ErrNoChannel is returned when no channel is configured.
var ErrNoChannel = errors.New("no notification channel configured")

// Message is one notification.
type Message struct {
	ID      string
	Subject string
	Text    string
}

// Channel delivers messages.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, msg Message) error
}

// Notifier fans a message out to its channels.
type Notifier struct {
	channels []Channel
}

// New returns a Notifier over the given channels; nil channels are skipped.
func New(channels ...Channel) *Notifier {
	n := &Notifier{}
	for _, c := range channels {
		if c != nil {
			n.channels = append(n.channels, c)
		}
	}
	return n
}

// Channels returns the names of the configured channels.
func (n *Notifier) Channels() []string {
	names := make([]string, len(n.channels))
	for i, c := range n.channels {
		names[i] = c.Name()
	}
	return names
}

// Send delivers text with subject on every channel. All channels are tried;
// their errors are joined.
func (n *Notifier) Send(ctx context.Context, text, subject string) error {
	if len(n.channels) == 0 {
		return ErrNoChannel
	}
	if text == "" {
		text = DefaultText
	}
	if subject == "" {
		subject = DefaultSubject
	}

	msg := Message{ID: uuid.NewString(), Subject: subject, Text: text}
	var errs []error
	for _, c := range n.channels {
		if err := c.Deliver(ctx, msg); err != nil {
			logger.Error("notification failed", "channel", c.Name(), "id", msg.ID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			continue
		}
		logger.Info("notification sent", "channel", c.Name(), "id", msg.ID)
	}
	return errors.Join(errs...)
}

// SendStatus sends the "I'm done" message for a finished section.
func (n *Notifier) SendStatus(ctx context.Context, section, subject string) error {
	if section == "" {
		section = DefaultSection
	}
	if subject == "" {
		subject = DefaultStatusSubject
	}
	return n.Send(ctx, StatusText(section), subject)
}

// StatusText formats the status body for section.
func StatusText(section string) string {
	return "I'm done (" + section + ") ^^"
}
