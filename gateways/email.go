package gateways

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailMessage struct {
	To      string
	Cc      string
	Subject string
	HTML    string
}

type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SESMailer sends through AWS SES with a fixed verified sender.
type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

func (m *SESMailer) Send(ctx context.Context, msg EmailMessage) error {
	dest := &types.Destination{
		ToAddresses: []string{msg.To},
	}
	if msg.Cc != "" {
		dest.CcAddresses = []string{msg.Cc}
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.from),
		Destination: dest,
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTML)},
			},
		},
	})
	return err
}
