package notification

import "time"

// Severity grades a notification.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// CategoryAttendance tags every notification this subsystem emits.
const CategoryAttendance = "ATTENDANCE"

// Notification is one message for one user. Dispatch is fire-and-forget:
// callers never treat a failed notification as a failed operation.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Severity  Severity
	Category  string
	Data      map[string]interface{}
	IsRead    bool
	CreatedAt time.Time
}

// CreateNotificationRequest queues one notification.
type CreateNotificationRequest struct {
	UserID   string
	Title    string
	Message  string
	Severity Severity
	Category string
	Data     map[string]interface{}
}
