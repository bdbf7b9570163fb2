package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/shared/response"
	"github.com/andreicionca/motivare-absente/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const secret = "test-secret"

func decode(t *testing.T, w *httptest.ResponseRecorder) response.ApiEnvelope {
	t.Helper()
	var env response.ApiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.AuthMiddleware(secret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := middleware.Principal(c)
		response.Success(c, http.StatusOK, p, nil)
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	p := domain.Principal{UserID: "u-1", Role: domain.RoleStudent, StudentID: "s-1", Class: "10B"}

	t.Run("bearer token", func(t *testing.T) {
		raw, _ := token.Issue(secret, p, time.Hour, time.Now())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+raw)

		protectedRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode(t, w).Success)
	})

	t.Run("cookie token", func(t *testing.T) {
		raw, _ := token.Issue(secret, p, time.Hour, time.Now())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: raw})

		protectedRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative missing token", func(t *testing.T) {
		w := httptest.NewRecorder()

		protectedRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, decode(t, w).Success)
	})

	t.Run("negative expired token", func(t *testing.T) {
		raw, _ := token.Issue(secret, p, time.Minute, time.Now().Add(-time.Hour))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+raw)

		protectedRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decode(t, w).Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	raw, _ := token.Issue(secret, domain.Principal{UserID: "u-1", Role: domain.RoleStudent, StudentID: "s-1"}, time.Hour, time.Now())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	protectedRouter(middleware.RoleMiddleware(domain.RoleTeacher)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	raw, _ := token.Issue(secret, domain.Principal{UserID: "t-1", Role: domain.RoleTeacher, Class: "10B"}, time.Hour, time.Now())
	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		return req
	}

	t.Run("allowed", func(t *testing.T) {
		rbac := &fakeRBAC{allowed: true}
		w := httptest.NewRecorder()

		protectedRouter(middleware.RBACAuthorize(rbac, "request", "finalize")).ServeHTTP(w, newReq())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "teacher", rbac.got.Role)
		assert.Equal(t, "t-1", rbac.got.Subject)
	})

	t.Run("negative forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()

		protectedRouter(middleware.RBACAuthorize(&fakeRBAC{}, "excuse", "submit")).ServeHTTP(w, newReq())

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decode(t, w).Code)
	})

	t.Run("negative enforcer failure", func(t *testing.T) {
		w := httptest.NewRecorder()

		protectedRouter(middleware.RBACAuthorize(&fakeRBAC{err: errors.New("policy broken")}, "excuse", "submit")).ServeHTTP(w, newReq())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "policy broken", decode(t, w).Error)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(middleware.MethodNotAllowed())
	r.POST("/excuses/submit", func(c *gin.Context) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/excuses/submit", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, w).Code)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery(zapNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decode(t, w).Success)
}
