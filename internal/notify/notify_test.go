package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

type notifierFunc func(ctx context.Context, event Event) error

func (f notifierFunc) Notify(ctx context.Context, event Event) error { return f(ctx, event) }

func TestNewEvent(t *testing.T) {
	a := NewEvent(EventEnrolled, "Chess Club", "Fridays", "a@x.edu")
	b := NewEvent(EventEnrolled, "Chess Club", "Fridays", "a@x.edu")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestEmailNotifier(t *testing.T) {
	t.Run("sends confirmation to participant", func(t *testing.T) {
		var captured *ses.SendEmailInput
		client := &MockSESService{
			SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
				captured = params
				return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
			},
		}

		n := NewEmailNotifier(client, "office@mergington.edu")
		err := n.Notify(context.Background(), NewEvent(EventEnrolled, "Chess Club", "Fridays, 3:30 PM - 5:00 PM", "a@x.edu"))
		require.NoError(t, err)

		require.NotNil(t, captured)
		assert.Equal(t, []string{"a@x.edu"}, captured.Destination.ToAddresses)
		assert.Equal(t, "office@mergington.edu", aws.ToString(captured.Source))
		assert.Equal(t, "You are signed up for Chess Club", aws.ToString(captured.Message.Subject.Data))
		assert.Contains(t, aws.ToString(captured.Message.Body.Text.Data), "Fridays, 3:30 PM - 5:00 PM")
	})

	t.Run("unenroll wording", func(t *testing.T) {
		var subject string
		client := &MockSESService{
			SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
				subject = aws.ToString(params.Message.Subject.Data)
				return &ses.SendEmailOutput{}, nil
			},
		}

		n := NewEmailNotifier(client, "office@mergington.edu")
		require.NoError(t, n.Notify(context.Background(), NewEvent(EventUnenrolled, "Art Club", "", "a@x.edu")))
		assert.Equal(t, "You have left Art Club", subject)
	})

	t.Run("wraps client errors", func(t *testing.T) {
		client := &MockSESService{
			SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
				return nil, errors.New("throttled")
			},
		}

		err := NewEmailNotifier(client, "office@mergington.edu").Notify(context.Background(), NewEvent(EventEnrolled, "Art Club", "", "a@x.edu"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "send confirmation email")
	})
}

func TestEventPublisher(t *testing.T) {
	var captured *sns.PublishInput
	client := &MockSNSService{
		PublishFunc: func(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			captured = params
			return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
		},
	}

	event := NewEvent(EventUnenrolled, "Drama Club", "Mondays", "b@x.edu")
	p := NewEventPublisher(client, "arn:aws:sns:us-east-1:123456789012:roster")
	require.NoError(t, p.Notify(context.Background(), event))

	require.NotNil(t, captured)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:roster", aws.ToString(captured.TopicArn))
	assert.Equal(t, "unenrolled", aws.ToString(captured.MessageAttributes["eventType"].StringValue))

	var decoded Event
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(captured.Message)), &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, "Drama Club", decoded.Activity)
	assert.Equal(t, "b@x.edu", decoded.Email)
}

func TestMulti(t *testing.T) {
	calls := 0
	ok := notifierFunc(func(context.Context, Event) error { calls++; return nil })
	failing := notifierFunc(func(context.Context, Event) error { calls++; return errors.New("down") })

	err := Multi{ok, failing, ok}.Notify(context.Background(), NewEvent(EventEnrolled, "Chess Club", "", "a@x.edu"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.Equal(t, 3, calls)
	assert.NoError(t, Multi{}.Notify(context.Background(), Event{}))
	assert.NoError(t, Noop{}.Notify(context.Background(), Event{}))
}
