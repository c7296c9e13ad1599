// Package notify delivers out-of-band text messages to phones.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Sender sends a text message to a phone number. Failures are returned, never retried.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// SQSAPI is the subset of the SQS client used to hand messages to the SMS gateway.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SMSMessage is the body the SMS gateway consumes.
type SMSMessage struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// SQSSender implements Sender by queueing messages for the SMS gateway.
type SQSSender struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSSender creates a new SQSSender.
func NewSQSSender(client SQSAPI, queueURL string) *SQSSender {
	return &SQSSender{Client: client, QueueURL: queueURL}
}

var _ Sender = (*SQSSender)(nil)

// Send enqueues the message.
func (s *SQSSender) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(SMSMessage{To: phone, Body: message})
	if err != nil {
		return fmt.Errorf("failed to marshal sms for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// LogSender writes messages to the log instead of delivering them. Used in development.
type LogSender struct{}

var _ Sender = LogSender{}

// Send logs the message.
func (LogSender) Send(_ context.Context, phone, message string) error {
	slog.Info("sms", "to", phone, "body", message)
	return nil
}
