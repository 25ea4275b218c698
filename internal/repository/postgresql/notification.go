package postgresql

import (
	"context"
	"fmt"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/notification"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// CreateBatch implements notification.Repository. Inserts run inside one
// transaction so a flush either lands whole or not at all.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO notifications (
				user_id, title, message, severity, category, data, is_read
			) VALUES (
				$1, $2, $3, $4, $5, $6, FALSE
			) RETURNING id, created_at
		`

		for _, n := range notifications {
			err := tx.QueryRow(ctx, query,
				n.UserID, n.Title, n.Message, n.Severity, n.Category, n.Data,
			).Scan(&n.ID, &n.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert notification: %w", err)
			}
		}

		return nil
	})
}
