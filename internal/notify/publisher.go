package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
)

const app = "sparcs"

// Notifier enqueues transactional email requests.
type Notifier interface {
	Enqueue(ctx context.Context, msg EmailMessage) error
}

// SQSSender abstracts SQS send operations for dependency inversion.
type SQSSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher publishes email requests to an SQS FIFO queue.
type SQSPublisher struct {
	client   SQSSender
	queueURL string
}

// NewSQSPublisher creates a new SQSPublisher.
func NewSQSPublisher(client SQSSender, queueURL string) *SQSPublisher {
	return &SQSPublisher{
		client:   client,
		queueURL: queueURL,
	}
}

// Enqueue sends an email request to the mailer queue. Messages sharing an
// event are grouped so the consumer processes them in order; the random
// token in the deduplication id keeps distinct sends for the same event
// from collapsing.
func (p *SQSPublisher) Enqueue(ctx context.Context, msg EmailMessage) error {
	eventID := msg.EventID
	if eventID == "" && len(msg.To) > 0 {
		eventID = msg.To[0]
	}

	body, err := json.Marshal([]EmailMessage{msg})
	if err != nil {
		return fmt.Errorf("marshal email message: %w", err)
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05")
	groupID := fmt.Sprintf("%s-event-%s", app, eventID)
	dedupID := fmt.Sprintf("%s-%s-%s", groupID, timestamp, uuid.New().String())

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:               aws.String(p.queueURL),
		MessageBody:            aws.String(string(body)),
		MessageDeduplicationId: aws.String(dedupID),
		MessageGroupId:         aws.String(groupID),
	})
	if err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}
	return nil
}
