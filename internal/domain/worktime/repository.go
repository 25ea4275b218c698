package worktime

import "context"

// Repository defines data access for work-time requests and responses.
type Repository interface {
	Create(ctx context.Context, request Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	// GetApprovedByAttendance returns every approved request governing one
	// attendance, the calculator's exception input.
	GetApprovedByAttendance(ctx context.Context, attendanceID string) ([]Request, error)

	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)

	// CreateResponse inserts the 1:1 response row. A second insert for the
	// same request fails with ErrRequestAlreadyResponded.
	CreateResponse(ctx context.Context, response Response) (Response, error)

	GetResponseByRequestID(ctx context.Context, requestID string) (*Response, error)

	// UpdateStatus moves a request out of PENDING.
	UpdateStatus(ctx context.Context, requestID string, status RequestStatus) error
}
