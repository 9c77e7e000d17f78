package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// Desktop shows messages as desktop notifications.
type Desktop struct {
	notify func(title, message string) error
}

// NewDesktop returns the desktop channel.
func NewDesktop() *Desktop {
	return &Desktop{notify: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

// Name implements Channel.
func (d *Desktop) Name() string { return "desktop" }

// Deliver implements Channel.
func (d *Desktop) Deliver(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.notify(msg.Subject, msg.Text)
}
