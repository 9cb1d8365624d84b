package notify

import (
	"context"
	"encoding/json"
	"fmt"

	awsclients "activity-signup/internal/common/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// EventPublisher publishes roster changes as JSON messages to an SNS topic.
type EventPublisher struct {
	client   awsclients.SNSAPI
	topicARN string
}

func NewEventPublisher(client awsclients.SNSAPI, topicARN string) *EventPublisher {
	return &EventPublisher{client: client, topicARN: topicARN}
}

func (p *EventPublisher) Notify(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Type)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publish roster event: %w", err)
	}
	return nil
}
