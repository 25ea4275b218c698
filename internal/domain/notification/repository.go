package notification

import "context"

// Repository persists notifications.
type Repository interface {
	CreateBatch(ctx context.Context, notifications []*Notification) error
}
