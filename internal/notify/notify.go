// Package notify delivers best-effort outbound messages to staff. Delivery
// failures are the caller's to log; they must never fail the state change
// that triggered them.
package notify

import (
	"context"

	"github.com/staykeep/staykeep/internal/domain"
)

// Notifier sends a message to a user.
type Notifier interface {
	NotifyUser(ctx context.Context, user *domain.User, message string) error
}

// Nop is a Notifier that discards all messages. Used in tests and when no
// delivery channel is configured.
type Nop struct{}

// NotifyUser implements Notifier.
func (Nop) NotifyUser(context.Context, *domain.User, string) error {
	return nil
}
