// Package notifications delivers account messages to users.
package notifications

import (
	"context"
	"log"
)

// PasswordReset is the payload of a password reset message. URL already
// embeds UID and Token; rendering it into an email is up to the consumer.
type PasswordReset struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	UID    string `json:"uid"`
	Token  string `json:"token"`
	URL    string `json:"url"`
}

// Notifier sends account messages
type Notifier interface {
	PasswordReset(ctx context.Context, msg PasswordReset) error
}

// LogNotifier writes messages to the process log
type LogNotifier struct{}

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// PasswordReset logs the reset link. The token is not logged.
func (n *LogNotifier) PasswordReset(_ context.Context, msg PasswordReset) error {
	log.Printf("📧 [notify] password reset requested for user %d (%s)", msg.UserID, msg.Email)
	return nil
}
