package request_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/request"
	requesterrors "github.com/andreicionca/motivare-absente/internal/request/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRequestService struct {
	request.Service
	listForStudentFn func(ctx context.Context, p domain.Principal, req request.ListForStudentRequest) (request.StudentRequestsResponse, error)
	finalizeBatchFn  func(ctx context.Context, p domain.Principal, req request.BatchRequest) (request.FinalizeBatchResponse, error)
	classStatsFn     func(ctx context.Context, p domain.Principal) (request.ClassStatsResponse, error)
}

func (f *fakeRequestService) ListForStudent(ctx context.Context, p domain.Principal, req request.ListForStudentRequest) (request.StudentRequestsResponse, error) {
	return f.listForStudentFn(ctx, p, req)
}

func (f *fakeRequestService) FinalizeBatch(ctx context.Context, p domain.Principal, req request.BatchRequest) (request.FinalizeBatchResponse, error) {
	return f.finalizeBatchFn(ctx, p, req)
}

func (f *fakeRequestService) ClassStats(ctx context.Context, p domain.Principal) (request.ClassStatsResponse, error) {
	return f.classStatsFn(ctx, p)
}

func perform(method, path, body string, p *domain.Principal, fn gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if p != nil {
		middleware.SetPrincipal(c, *p)
	}
	fn(c)
	return w
}

func TestRequestHandler(t *testing.T) {
	teacher := &domain.Principal{UserID: "t1", Role: domain.RoleTeacher, Class: "9A"}
	student := &domain.Principal{UserID: "s1", Role: domain.RoleStudent, StudentID: "s1"}

	t.Run("list for student accepts an empty body", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{
			listForStudentFn: func(ctx context.Context, p domain.Principal, req request.ListForStudentRequest) (request.StudentRequestsResponse, error) {
				assert.Equal(t, "", req.StudentID)
				return request.StudentRequestsResponse{StudentID: p.StudentID}, nil
			},
		})

		w := perform(http.MethodPost, "/requests/list-for-student", "", student, h.ListForStudent)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"student_id":"s1"`)
	})

	t.Run("finalize conflict is 409", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{
			finalizeBatchFn: func(ctx context.Context, p domain.Principal, req request.BatchRequest) (request.FinalizeBatchResponse, error) {
				return request.FinalizeBatchResponse{}, requesterrors.ErrFinalizeInProgress
			},
		})

		w := perform(http.MethodPost, "/requests/finalize-batch", `{"excuse_ids":["a"]}`, teacher, h.FinalizeBatch)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("not approved carries the offending ids", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{
			finalizeBatchFn: func(ctx context.Context, p domain.Principal, req request.BatchRequest) (request.FinalizeBatchResponse, error) {
				return request.FinalizeBatchResponse{}, requesterrors.ErrNotApproved.WithDetails([]string{"x1"})
			},
		})

		w := perform(http.MethodPost, "/requests/finalize-batch", `{"excuse_ids":["x1"]}`, teacher, h.FinalizeBatch)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"x1"`)
	})

	t.Run("negative malformed body", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{})

		w := perform(http.MethodPost, "/requests/finalize-batch", `{"excuse_ids":`, teacher, h.FinalizeBatch)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("negative missing principal", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{})

		w := perform(http.MethodPost, "/requests/finalize-batch", `{}`, nil, h.FinalizeBatch)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stats export is a spreadsheet attachment", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{
			classStatsFn: func(ctx context.Context, p domain.Principal) (request.ClassStatsResponse, error) {
				return request.ClassStatsResponse{Class: "9A"}, nil
			},
		})

		w := perform(http.MethodGet, "/classes/stats/export", "", teacher, h.ExportClassStats)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "statistici_9A_")
		assert.NotEmpty(t, w.Body.Bytes())
	})
}
