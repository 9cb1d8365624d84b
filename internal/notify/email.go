package notify

import (
	"context"
	"fmt"

	awsclients "activity-signup/internal/common/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailNotifier sends the participant a confirmation through SES.
type EmailNotifier struct {
	client    awsclients.SESAPI
	fromEmail string
}

func NewEmailNotifier(client awsclients.SESAPI, fromEmail string) *EmailNotifier {
	return &EmailNotifier{client: client, fromEmail: fromEmail}
}

func (n *EmailNotifier) Notify(ctx context.Context, event Event) error {
	subject, body := renderEmail(event)

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{event.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.fromEmail),
	})
	if err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

func renderEmail(event Event) (subject, body string) {
	switch event.Type {
	case EventUnenrolled:
		subject = fmt.Sprintf("You have left %s", event.Activity)
		body = fmt.Sprintf("You are no longer signed up for %s.", event.Activity)
	default:
		subject = fmt.Sprintf("You are signed up for %s", event.Activity)
		body = fmt.Sprintf("You are now signed up for %s.", event.Activity)
		if event.Schedule != "" {
			body += fmt.Sprintf(" It meets %s.", event.Schedule)
		}
	}
	return subject, body
}
