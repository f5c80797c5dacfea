// Package sqs adapts Amazon SQS to the pipeline's queue port.
package sqs

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

var _ ports.Queue = (*Queue)(nil)

// Queue receives and acknowledges notification messages on one SQS queue.
type Queue struct {
	client   *awssqs.Client
	queueURL string
}

// NewQueue wires an SQS client to a queue URL. Caller owns the client lifecycle.
func NewQueue(client *awssqs.Client, queueURL string) *Queue {
	return &Queue{client: client, queueURL: queueURL}
}

// Receive long-polls the queue for up to maxMessages deliveries.
func (q *Queue) Receive(ctx context.Context, maxMessages int32, wait time.Duration) ([]ports.Message, error) {
	if err := q.ensureClient(); err != nil {
		return nil, err
	}
	out, err := q.client.ReceiveMessage(ctx, &awssqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     int32(wait / time.Second),
	})
	if err != nil {
		return nil, err
	}
	messages := make([]ports.Message, 0, len(out.Messages))
	for _, msg := range out.Messages {
		messages = append(messages, ports.Message{
			Body:          aws.ToString(msg.Body),
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
		})
	}
	return messages, nil
}

// Delete acknowledges a single delivery by receipt handle.
func (q *Queue) Delete(ctx context.Context, receiptHandle string) error {
	if err := q.ensureClient(); err != nil {
		return err
	}
	_, err := q.client.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	return err
}

func (q *Queue) ensureClient() error {
	if q == nil || q.client == nil {
		return errors.New("sqs queue adapter not configured")
	}
	return nil
}
