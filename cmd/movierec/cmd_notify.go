package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/movierec-dashboard-tui/internal/config"
	"github.com/j-veylop/movierec-dashboard-tui/internal/notify"
)

type notifyOptions struct {
	section string
	subject string
	text    string
	desktop bool
}

func newNotifyCommand(global *globalOptions) *cobra.Command {
	opts := &notifyOptions{}

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a status notification when a long job is done",
		Long: `Send a status notification by mail and, with --desktop, as a desktop
notification.

By default the message reads "I'm done (<section>) ^^". --text replaces it.
Mail is sent over implicit TLS using MOVIEREC_MAIL_* or the MAILSENDER,
MAILUSER and MAILPW environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}
			closer, err := initLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			n, err := newNotifier(cfg, opts.desktop)
			if err != nil {
				return err
			}
			if err := sendNotification(cmd.Context(), n, opts); err != nil {
				return fmt.Errorf("mail failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Notification sent via %v\n", n.Channels())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.section, "section", notify.DefaultSection, "Finished section named in the status text")
	cmd.Flags().StringVar(&opts.subject, "subject", "", "Message subject")
	cmd.Flags().StringVar(&opts.text, "text", "", "Message text, replacing the status text")
	cmd.Flags().BoolVar(&opts.desktop, "desktop", false, "Also show a desktop notification")

	return cmd
}

// newNotifier builds the channels enabled by cfg.
func newNotifier(cfg *config.Config, desktop bool) (*notify.Notifier, error) {
	var channels []notify.Channel
	if cfg.Mail.Enabled() {
		mailer, err := notify.NewMailer(notify.MailConfig{
			Server:     cfg.Mail.Server,
			Port:       cfg.Mail.Port,
			Sender:     cfg.Mail.Sender,
			User:       cfg.Mail.User,
			Password:   cfg.Mail.Password,
			Recipients: cfg.MailRecipients(),
		})
		if err != nil {
			return nil, fmt.Errorf("invalid mail configuration: %w", err)
		}
		channels = append(channels, mailer)
	}
	if desktop || cfg.DesktopNotify {
		channels = append(channels, notify.NewDesktop())
	}
	return notify.New(channels...), nil
}

func sendNotification(ctx context.Context, n *notify.Notifier, opts *notifyOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.text != "" {
		return n.Send(ctx, opts.text, opts.subject)
	}
	return n.SendStatus(ctx, opts.section, opts.subject)
}
