package sender

import (
	"context"
	"time"
)

// SendResult describes a delivered message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender delivers customer-facing email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}
