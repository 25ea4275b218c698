package worktime

import "context"

// ResponseEvent is emitted after a response is committed for a request.
//
// Subscribers:
//   - work-hour calculator: recomputes the single governing attendance
//     (the low-latency path for a just-approved overtime request).
type ResponseEvent struct {
	RequestID    string
	AttendanceID *string
	Approved     bool
	ResponderID  string
}

// ResponseSubscriber reacts to a committed response. The emitter waits for
// the subscriber to finish before acknowledging the response, so a second
// approval touching the same attendance cannot race ahead of an incomplete
// recomputation.
type ResponseSubscriber interface {
	OnWorkTimeResponded(ctx context.Context, event ResponseEvent) error
}
