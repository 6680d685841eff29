package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"intern-portal/config"
	"intern-portal/logger"
	"intern-portal/services/kafka"
)

// sendTimeout bounds a single SMTP delivery
const sendTimeout = 30 * time.Second

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, mail OutgoingMail) error
}

// SMTPMailer sends synchronously over SMTP.
type SMTPMailer struct{}

func (SMTPMailer) Send(ctx context.Context, mail OutgoingMail) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return SendEmailDirect(ctx, mail)
}

// QueueMailer publishes email.send events to Kafka for async delivery by the
// consumer. When the event layer is disabled or disconnected it falls back
// to direct SMTP so offer letters still go out.
type QueueMailer struct {
	Fallback Mailer
}

func NewQueueMailer() *QueueMailer {
	return &QueueMailer{Fallback: SMTPMailer{}}
}

func (q *QueueMailer) Send(ctx context.Context, mail OutgoingMail) error {
	if !kafka.IsConnected() {
		return q.Fallback.Send(ctx, mail)
	}

	payload := map[string]interface{}{
		"event":     "email.send",
		"recipient": mail.To,
		"subject":   mail.Subject,
		"body":      mail.HTMLBody,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if len(mail.Attachment) > 0 {
		payload["attachment_name"] = mail.AttachmentName
		payload["attachment"] = base64.StdEncoding.EncodeToString(mail.Attachment)
	}

	if err := kafka.Publish(config.AppConfig.KafkaEmailTopic, fmt.Sprintf("email-%s", mail.To), payload); err != nil {
		logger.Warn("Failed to queue email for %s, sending directly: %v", mail.To, err)
		return q.Fallback.Send(ctx, mail)
	}

	logger.Info("Email event queued to Kafka: %s", mail.To)
	return nil
}

// HandleEmailEvent processes an email.send event from the Kafka consumer and
// performs the actual SMTP delivery.
func HandleEmailEvent(event map[string]interface{}) error {
	mail := OutgoingMail{}
	if v, ok := event["recipient"].(string); ok {
		mail.To = v
	}
	if v, ok := event["subject"].(string); ok {
		mail.Subject = v
	}
	if v, ok := event["body"].(string); ok {
		mail.HTMLBody = v
	}
	if v, ok := event["attachment_name"].(string); ok {
		mail.AttachmentName = v
	}
	if v, ok := event["attachment"].(string); ok && v != "" {
		decoded, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return fmt.Errorf("error decoding email attachment: %w", err)
		}
		mail.Attachment = decoded
	}

	if mail.To == "" {
		return fmt.Errorf("email event missing recipient")
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return SendEmailDirect(ctx, mail)
}
