package notify

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// KafkaMailer enqueues mail on the outbox topic for an out-of-process sender.
type KafkaMailer struct {
	Publisher events.Publisher
}

func (m *KafkaMailer) Send(ctx context.Context, msg Message) error {
	if err := m.Publisher.PublishEvent(ctx, events.TopicMail, msg.To, msg); err != nil {
		return fmt.Errorf("enqueue mail: %w", err)
	}
	return nil
}

// LogMailer writes mail to the log instead of delivering it.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	logging.FromContext(ctx).Info("mail", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}

func ResetMessage(to, link string) Message {
	return Message{
		To:      to,
		Subject: "Your Password Reset Token",
		Body:    fmt.Sprintf("Your Password Reset Token is here!\n\n%s\n\nThe link is valid for one hour.", link),
	}
}
