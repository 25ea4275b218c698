package worktime

import (
	"context"
	"log/slog"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// WorkTimeServiceImpl implements the exception workflow: requests raised by
// ingestion or managers, and the single response that settles each one.
type WorkTimeServiceImpl struct {
	db           *database.DB
	workTimeRepo worktime.Repository
	subscribers  []worktime.ResponseSubscriber
	logger       *slog.Logger
}

func NewWorkTimeService(db *database.DB, workTimeRepo worktime.Repository, logger *slog.Logger) *WorkTimeServiceImpl {
	return &WorkTimeServiceImpl{
		db:           db,
		workTimeRepo: workTimeRepo,
		logger:       logger,
	}
}

// Subscribe registers a subscriber for committed responses. Called once
// during wiring, before the service handles traffic.
func (s *WorkTimeServiceImpl) Subscribe(sub worktime.ResponseSubscriber) {
	s.subscribers = append(s.subscribers, sub)
}

// CreateRequest implements worktime.Service.
func (s *WorkTimeServiceImpl) CreateRequest(ctx context.Context, req worktime.CreateRequestRequest) (worktime.Request, error) {
	if err := req.Validate(); err != nil {
		return worktime.Request{}, err
	}

	request, err := s.workTimeRepo.Create(ctx, worktime.Request{
		EmployeeID:         req.EmployeeID,
		AttendanceID:       req.AttendanceID,
		Type:               req.Type,
		DurationMinutes:    req.DurationMinutes,
		DayType:            req.DayType,
		Status:             worktime.RequestStatusPending,
		Reason:             req.Reason,
		DocumentURLs:       req.DocumentURLs,
		IsManagerInitiated: req.IsManagerInitiated,
	})
	if err != nil {
		return worktime.Request{}, err
	}

	s.logger.Info("work-time request created",
		slog.String("request_id", request.ID),
		slog.String("employee_id", request.EmployeeID),
		slog.String("type", string(request.Type)))

	return request, nil
}

// Respond implements worktime.Service. The response row and the
// PENDING -> APPROVED|REJECTED transition commit together; the unique index
// on request_id turns a second attempt into ErrRequestAlreadyResponded with
// no partial effect. Subscribers run synchronously after the commit, so the
// caller is not acknowledged before the affected attendance is recomputed.
func (s *WorkTimeServiceImpl) Respond(ctx context.Context, requestID string, req worktime.RespondRequest, responderID string) (worktime.Response, error) {
	request, err := s.workTimeRepo.GetByID(ctx, requestID)
	if err != nil {
		return worktime.Response{}, err
	}
	if request.Status != worktime.RequestStatusPending {
		return worktime.Response{}, worktime.ErrRequestAlreadyResponded
	}

	status := worktime.RequestStatusRejected
	if req.Approved {
		status = worktime.RequestStatusApproved
	}

	var response worktime.Response
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		response, err = s.workTimeRepo.CreateResponse(txCtx, worktime.Response{
			RequestID:   requestID,
			Approved:    req.Approved,
			ResponderID: responderID,
			Remarks:     req.Remarks,
		})
		if err != nil {
			return err
		}

		return s.workTimeRepo.UpdateStatus(txCtx, requestID, status)
	})
	if err != nil {
		return worktime.Response{}, err
	}

	event := worktime.ResponseEvent{
		RequestID:    requestID,
		AttendanceID: request.AttendanceID,
		Approved:     req.Approved,
		ResponderID:  responderID,
	}
	for _, sub := range s.subscribers {
		if err := sub.OnWorkTimeResponded(ctx, event); err != nil {
			// The decision is committed; a subscriber failure is recoverable
			// by re-running the recomputation, not by unwinding the response.
			s.logger.Error("response subscriber failed",
				slog.String("request_id", requestID),
				slog.String("error", err.Error()))
		}
	}

	s.logger.Info("work-time request responded",
		slog.String("request_id", requestID),
		slog.String("status", string(status)),
		slog.String("responder_id", responderID))

	return response, nil
}

// GetRequest implements worktime.Service.
func (s *WorkTimeServiceImpl) GetRequest(ctx context.Context, id string) (worktime.RequestResponse, error) {
	request, err := s.workTimeRepo.GetByID(ctx, id)
	if err != nil {
		return worktime.RequestResponse{}, err
	}

	response, err := s.workTimeRepo.GetResponseByRequestID(ctx, id)
	if err != nil {
		return worktime.RequestResponse{}, err
	}

	return toRequestResponse(request, response), nil
}

// ListRequests implements worktime.Service.
func (s *WorkTimeServiceImpl) ListRequests(ctx context.Context, filter worktime.RequestFilter) (worktime.ListRequestsResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	requests, total, err := s.workTimeRepo.List(ctx, filter)
	if err != nil {
		return worktime.ListRequestsResponse{}, err
	}

	resp := worktime.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   make([]worktime.RequestResponse, 0, len(requests)),
	}
	for _, request := range requests {
		resp.Requests = append(resp.Requests, toRequestResponse(request, nil))
	}
	return resp, nil
}

func toRequestResponse(request worktime.Request, response *worktime.Response) worktime.RequestResponse {
	out := worktime.RequestResponse{
		ID:                 request.ID,
		EmployeeID:         request.EmployeeID,
		AttendanceID:       request.AttendanceID,
		Type:               request.Type,
		DurationMinutes:    request.DurationMinutes,
		DayType:            request.DayType,
		Status:             request.Status,
		Reason:             request.Reason,
		DocumentURLs:       request.DocumentURLs,
		IsManagerInitiated: request.IsManagerInitiated,
		CreatedAt:          request.CreatedAt,
	}
	if response != nil {
		out.Response = &worktime.ResponseDetail{
			ID:          response.ID,
			Approved:    response.Approved,
			ResponderID: response.ResponderID,
			Remarks:     response.Remarks,
			CreatedAt:   response.CreatedAt,
		}
	}
	return out
}
