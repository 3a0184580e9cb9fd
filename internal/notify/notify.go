// internal/notify/notify.go

// Package notify is the delivery sink for reminder notifications. The
// reminder engine produces (fireAt, message) pairs; this package owns the
// channels and the consent state.
package notify

import (
	"context"

	awsclients "applytrack/internal/common/aws"
	"applytrack/internal/common/config"
	stderrors "applytrack/internal/common/errors"
	"applytrack/internal/common/logger"
)

// Notifier delivers a single notification to the tracker owner.
type Notifier interface {
	// Enabled reports whether any delivery channel is consented to.
	Enabled() bool
	Notify(ctx context.Context, subject, message string) error
}

// Sink sends via SES email and, when enabled, SNS SMS. Enablement flags in
// config are the delivery-consent state; a disabled sink drops messages
// silently, which is not an error in this domain.
type Sink struct {
	cfg    config.NotificationConfig
	email  *awsclients.EmailSender
	sms    *awsclients.SMSSender
	logger logger.Logger
}

func NewSink(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Sink, error) {
	s := &Sink{cfg: cfg, logger: log.WithFields(map[string]interface{}{"component": "notify"})}

	if cfg.Email.Enabled {
		email, err := awsclients.NewEmailSender(ctx, cfg.AWS.Region, cfg.Email.FromEmail)
		if err != nil {
			return nil, err
		}
		s.email = email
	}
	if cfg.SMS.Enabled {
		sms, err := awsclients.NewSMSSender(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		s.sms = sms
	}

	return s, nil
}

// NewSinkWithSenders wires pre-built senders (tests).
func NewSinkWithSenders(cfg config.NotificationConfig, email *awsclients.EmailSender, sms *awsclients.SMSSender, log logger.Logger) *Sink {
	return &Sink{cfg: cfg, email: email, sms: sms, logger: log}
}

func (s *Sink) Enabled() bool {
	return s.cfg.Email.Enabled || s.cfg.SMS.Enabled
}

func (s *Sink) Notify(ctx context.Context, subject, message string) error {
	if !s.Enabled() {
		s.logger.Debug("notification dropped, no channel enabled", map[string]interface{}{
			"subject": subject,
		})
		return nil
	}

	if s.cfg.Email.Enabled && s.email != nil {
		if err := s.email.Send(ctx, s.cfg.Recipient.Email, subject, message); err != nil {
			s.logger.Error("email send failed", map[string]interface{}{
				"error": err,
				"to":    s.cfg.Recipient.Email,
			})
			return stderrors.NewNotificationSendFailedError("email", err)
		}
	}

	if s.cfg.SMS.Enabled && s.sms != nil {
		if err := s.sms.Send(ctx, s.cfg.Recipient.Phone, message); err != nil {
			s.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
				"to":    s.cfg.Recipient.Phone,
			})
			return stderrors.NewNotificationSendFailedError("sms", err)
		}
	}

	return nil
}

// Noop discards every notification. Used in tests and when the sink is
// configured off.
type Noop struct{}

func (Noop) Enabled() bool                                { return false }
func (Noop) Notify(context.Context, string, string) error { return nil }
