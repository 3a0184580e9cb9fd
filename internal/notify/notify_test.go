// internal/notify/notify_test.go
package notify

import (
	"context"
	"errors"
	"testing"

	awsclients "applytrack/internal/common/aws"
	"applytrack/internal/common/config"
	stderrors "applytrack/internal/common/errors"
	"applytrack/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
)

type fakeSES struct {
	sent []ses.SendEmailInput
	err  error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, *params)
	return &ses.SendEmailOutput{}, nil
}

type fakeSNS struct {
	published []sns.PublishInput
	err       error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published = append(f.published, *params)
	return &sns.PublishOutput{}, nil
}

func notifConfig(email, sms bool) config.NotificationConfig {
	cfg := config.NotificationConfig{}
	cfg.Email.Enabled = email
	cfg.Email.FromEmail = "tracker@example.com"
	cfg.SMS.Enabled = sms
	cfg.Recipient.Email = "me@example.com"
	cfg.Recipient.Phone = "+10000000000"
	return cfg
}

func TestSink_NotifyEmail(t *testing.T) {
	sesClient := &fakeSES{}
	sink := NewSinkWithSenders(
		notifConfig(true, false),
		awsclients.NewEmailSenderWithClient(sesClient, "tracker@example.com"),
		nil,
		logger.NewTestLogger(t),
	)

	err := sink.Notify(context.Background(), "Interview Reminder", "You have an interview with Google today! Good luck!")

	assert.NoError(t, err)
	assert.Len(t, sesClient.sent, 1)
	assert.Equal(t, "me@example.com", sesClient.sent[0].Destination.ToAddresses[0])
	assert.Equal(t, "Interview Reminder", *sesClient.sent[0].Message.Subject.Data)
}

func TestSink_NotifySMS(t *testing.T) {
	snsClient := &fakeSNS{}
	sink := NewSinkWithSenders(
		notifConfig(false, true),
		nil,
		awsclients.NewSMSSenderWithClient(snsClient),
		logger.NewTestLogger(t),
	)

	err := sink.Notify(context.Background(), "Interview Reminder", "You have an interview with TCS today! Good luck!")

	assert.NoError(t, err)
	assert.Len(t, snsClient.published, 1)
	assert.Equal(t, "+10000000000", *snsClient.published[0].PhoneNumber)
}

func TestSink_DisabledDropsSilently(t *testing.T) {
	sink := NewSinkWithSenders(notifConfig(false, false), nil, nil, logger.NewNoOpLogger())

	assert.False(t, sink.Enabled())
	assert.NoError(t, sink.Notify(context.Background(), "subject", "message"))
}

func TestSink_EmailFailure(t *testing.T) {
	sesClient := &fakeSES{err: errors.New("throttled")}
	sink := NewSinkWithSenders(
		notifConfig(true, false),
		awsclients.NewEmailSenderWithClient(sesClient, "tracker@example.com"),
		nil,
		logger.NewNoOpLogger(),
	)

	err := sink.Notify(context.Background(), "subject", "message")

	assert.Error(t, err)
	var stdErr *stderrors.StandardError
	assert.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
