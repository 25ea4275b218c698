package notification

import "context"

// Service queues notifications for async delivery via background workers.
type Service interface {
	// Notify queues one notification. Errors are worth logging but must
	// never abort the caller's operation.
	Notify(ctx context.Context, req CreateNotificationRequest) error

	// Stop drains the queue and stops the workers.
	Stop()
}
