package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/handler/http/response"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type WorkTimeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
}

type workTimeHandlerImpl struct {
	workTimeService worktime.Service
	jwtService      jwt.Service
}

func NewWorkTimeHandler(workTimeService worktime.Service, jwtService jwt.Service) WorkTimeHandler {
	return &workTimeHandlerImpl{
		workTimeService: workTimeService,
		jwtService:      jwtService,
	}
}

// Create implements WorkTimeHandler.
func (h *workTimeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worktime.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.workTimeService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work-time request created", request)
}

// Get implements WorkTimeHandler.
func (h *workTimeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.workTimeService.GetRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// List implements WorkTimeHandler.
func (h *workTimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := worktime.RequestFilter{
		EmployeeID:   r.URL.Query().Get("employee_id"),
		AttendanceID: r.URL.Query().Get("attendance_id"),
		Status:       worktime.RequestStatus(r.URL.Query().Get("status")),
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.workTimeService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// Respond implements WorkTimeHandler. The responder identity comes from the
// verified JWT, never from the body.
func (h *workTimeHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor, err := h.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	var req worktime.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.workTimeService.Respond(r.Context(), id, req, actor.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work-time request responded", resp)
}
