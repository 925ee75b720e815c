package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"golang.org/x/time/rate"
)

const charsetUTF8 = "UTF-8"

// SESMailer sends notification e-mails through AWS SES. A token-bucket
// limiter keeps bursts of due reminders under the SES send-rate quota.
type SESMailer struct {
	client  *ses.Client
	sender  string
	limiter *rate.Limiter
}

// NewSESMailer builds the SES client from the ambient AWS credentials.
func NewSESMailer(ctx context.Context, region, sender string, sendPerSec float64, burst int) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return &SESMailer{
		client:  ses.NewFromConfig(cfg),
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(sendPerSec), burst),
	}, nil
}

func (m *SESMailer) Send(ctx context.Context, to, subject, html string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return &SendError{Recipient: to, Subject: subject, Err: err}
	}

	input := &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String(charsetUTF8),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(html),
					Charset: aws.String(charsetUTF8),
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return &SendError{Recipient: to, Subject: subject, Err: err}
	}
	return nil
}
