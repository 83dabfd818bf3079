package mail

import (
	"context"
	"fmt"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// subjects per decision template; bodies come from SES template rendering in
// the full portal, here a plain-text fallback keeps dispatch self-contained.
var subjects = map[string]string{
	"loan_approved":    "Your loan has been approved",
	"loan_rejected":    "Update on your loan application",
	"loan_closed":      "Your loan is closed",
	"deposit_verified": "Your security deposit is verified",
}

// SESMailer implements the back-office Mailer over Amazon SES. The identity
// provider upstream maps user ids to verified addresses; recipients arrive
// here already resolved.
type SESMailer struct {
	client *ses.Client
	sender string
}

func NewSESMailer(ctx context.Context, region, sender string) (*SESMailer, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

func (m *SESMailer) Send(ctx context.Context, template, recipient string, data map[string]any) error {
	subject, ok := subjects[template]
	if !ok {
		subject = "Account update"
	}
	body := fmt.Sprintf("Loan %v is now %v.", data["loan_id"], data["status"])

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      &m.sender,
		Destination: &types.Destination{ToAddresses: []string{recipient}},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body:    &types.Body{Text: &types.Content{Data: &body}},
		},
	})
	return err
}
