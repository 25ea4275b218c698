package notification

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*notification.Notification
}

func (r *fakeNotificationRepo) CreateBatch(_ context.Context, notifications []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, notifications...)
	return nil
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func TestNotifyFlushesOnStop(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, Config{
		FlushInterval: time.Hour, // force the flush to happen via Stop
		WorkerCount:   1,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Notify(context.Background(), notification.CreateNotificationRequest{
			UserID:   "user-1",
			Title:    "Late check-in",
			Message:  "You checked in late.",
			Severity: notification.SeverityWarning,
			Category: notification.CategoryAttendance,
		}))
	}

	svc.Stop()

	assert.Equal(t, 5, repo.count())
	for _, n := range repo.created {
		assert.Equal(t, "user-1", n.UserID)
		assert.Equal(t, notification.CategoryAttendance, n.Category)
		assert.NotEmpty(t, n.ID)
	}
}

func TestNotifyFallsBackToDirectInsertWhenQueueFull(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, Config{
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     1,
		BatchSize:     100,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Overflowing the one-slot queue falls back to synchronous inserts;
	// nothing is dropped either way.
	for i := 0; i < 10; i++ {
		require.NoError(t, svc.Notify(context.Background(), notification.CreateNotificationRequest{
			UserID:  "user-1",
			Title:   "Overtime recorded",
			Message: "You worked past your shift.",
		}))
	}

	svc.Stop()

	assert.Equal(t, 10, repo.count())
}
