// internal/common/aws/sns.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the slice of the SNS client used here, for mocking.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSSender delivers SMS via SNS.
type SMSSender struct {
	client SNSAPI
}

// NewSMSSender builds an SNS-backed sender for the given region.
func NewSMSSender(ctx context.Context, region string) (*SMSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &SMSSender{client: sns.NewFromConfig(awsCfg)}, nil
}

// NewSMSSenderWithClient wires an existing client (tests).
func NewSMSSenderWithClient(client SNSAPI) *SMSSender {
	return &SMSSender{client: client}
}

// Send delivers one SMS.
func (s *SMSSender) Send(ctx context.Context, to, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}
