package worktime

import "context"

// Service defines the exception workflow operations.
type Service interface {
	// CreateRequest raises a PENDING request.
	CreateRequest(ctx context.Context, req CreateRequestRequest) (Request, error)

	// Respond records the single approval decision for a request, atomically
	// with the PENDING -> APPROVED|REJECTED transition, then triggers the
	// single-attendance work-hour recomputation before returning.
	Respond(ctx context.Context, requestID string, req RespondRequest, responderID string) (Response, error)

	GetRequest(ctx context.Context, id string) (RequestResponse, error)

	ListRequests(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
}
