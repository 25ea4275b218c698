package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWorkTimeService scripts the service layer so handler behavior can be
// exercised without a database.
type fakeWorkTimeService struct {
	createErr  error
	respondErr error
	getErr     error
	request    worktime.RequestResponse
}

func (f *fakeWorkTimeService) CreateRequest(_ context.Context, req worktime.CreateRequestRequest) (worktime.Request, error) {
	if f.createErr != nil {
		return worktime.Request{}, f.createErr
	}
	if err := req.Validate(); err != nil {
		return worktime.Request{}, err
	}
	return worktime.Request{ID: "req-1", EmployeeID: req.EmployeeID, Type: req.Type}, nil
}

func (f *fakeWorkTimeService) Respond(_ context.Context, requestID string, _ worktime.RespondRequest, _ string) (worktime.Response, error) {
	if f.respondErr != nil {
		return worktime.Response{}, f.respondErr
	}
	return worktime.Response{ID: "resp-1", RequestID: requestID}, nil
}

func (f *fakeWorkTimeService) GetRequest(_ context.Context, _ string) (worktime.RequestResponse, error) {
	if f.getErr != nil {
		return worktime.RequestResponse{}, f.getErr
	}
	return f.request, nil
}

func (f *fakeWorkTimeService) ListRequests(_ context.Context, _ worktime.RequestFilter) (worktime.ListRequestsResponse, error) {
	return worktime.ListRequestsResponse{}, nil
}

func newWorkTimeTestRouter(svc worktime.Service) *chi.Mux {
	h := NewWorkTimeHandler(svc, nil)
	r := chi.NewRouter()
	r.Post("/work-time-requests", h.Create)
	r.Get("/work-time-requests/{id}", h.Get)
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWorkTimeCreateHandler(t *testing.T) {
	t.Parallel()

	t.Run("valid request is created", func(t *testing.T) {
		t.Parallel()

		router := newWorkTimeTestRouter(&fakeWorkTimeService{})
		body, _ := json.Marshal(worktime.CreateRequestRequest{
			EmployeeID:      "emp-1",
			Type:            worktime.RequestTypeOvertime,
			DurationMinutes: 60,
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/work-time-requests", bytes.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, decodeResponse(t, rec).Success)
	})

	t.Run("validation failure maps to 422", func(t *testing.T) {
		t.Parallel()

		router := newWorkTimeTestRouter(&fakeWorkTimeService{})
		body, _ := json.Marshal(worktime.CreateRequestRequest{Type: worktime.RequestType("LUNCH")})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/work-time-requests", bytes.NewReader(body)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("malformed JSON maps to 400", func(t *testing.T) {
		t.Parallel()

		router := newWorkTimeTestRouter(&fakeWorkTimeService{})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/work-time-requests", bytes.NewReader([]byte("{"))))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWorkTimeGetHandlerNotFound(t *testing.T) {
	t.Parallel()

	router := newWorkTimeTestRouter(&fakeWorkTimeService{getErr: worktime.ErrRequestNotFound})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work-time-requests/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestDuplicateResponseMapsToConflict(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	response.HandleError(rec, worktime.ErrRequestAlreadyResponded)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}
