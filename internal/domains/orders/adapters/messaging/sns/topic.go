// Package sns adapts Amazon SNS to the pipeline's broadcast topic port.
package sns

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

var _ ports.Topic = (*Topic)(nil)

// Topic publishes serialized payloads to one SNS topic.
type Topic struct {
	client   *awssns.Client
	topicARN string
}

// NewTopic wires an SNS client to a topic ARN. Caller owns the client lifecycle.
func NewTopic(client *awssns.Client, topicARN string) *Topic {
	return &Topic{client: client, topicARN: topicARN}
}

// Publish sends the payload to the topic; the topic-to-queue subscription
// wraps it in the notification envelope on the way down.
func (t *Topic) Publish(ctx context.Context, payload string) error {
	if t == nil || t.client == nil {
		return errors.New("sns topic adapter not configured")
	}
	_, err := t.client.Publish(ctx, &awssns.PublishInput{
		TopicArn: aws.String(t.topicARN),
		Message:  aws.String(payload),
	})
	return err
}
