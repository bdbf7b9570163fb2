package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	autherrors "github.com/andreicionca/motivare-absente/internal/auth/errors"
	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	authenticateFn func(ctx context.Context, req AuthenticateRequest) (AuthResponse, error)
	meFn           func(ctx context.Context, p domain.Principal) (UserResponse, error)
}

func (f *fakeService) Authenticate(ctx context.Context, req AuthenticateRequest) (AuthResponse, error) {
	return f.authenticateFn(ctx, req)
}

func (f *fakeService) Me(ctx context.Context, p domain.Principal) (UserResponse, error) {
	return f.meFn(ctx, p)
}

func performAuthenticate(h *Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/authenticate", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	h.Authenticate(c)
	return w
}

func TestHandler_Authenticate(t *testing.T) {
	svc := &fakeService{
		authenticateFn: func(ctx context.Context, req AuthenticateRequest) (AuthResponse, error) {
			if req.Credentials.Password != "parola" {
				return AuthResponse{}, autherrors.ErrInvalidCredentials
			}
			return AuthResponse{User: UserResponse{ID: "t1", Role: "teacher"}, AccessToken: "tok"}, nil
		},
	}
	h := NewHandler(svc, false, 3600)

	t.Run("web client gets cookie", func(t *testing.T) {
		w := performAuthenticate(h,
			`{"role":"teacher","credentials":{"email":"a@b.ro","password":"parola"}}`,
			map[string]string{"User-Agent": "Mozilla/5.0"},
		)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=tok")

		var env response.ApiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Success)
	})

	t.Run("cli client gets no cookie", func(t *testing.T) {
		w := performAuthenticate(h,
			`{"role":"teacher","credentials":{"email":"a@b.ro","password":"parola"}}`,
			map[string]string{"X-Client-Type": "cli"},
		)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		w := performAuthenticate(h, `{"role":"teacher","credentials":{"email":"a@b.ro","password":"x"}}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var env response.ApiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Success)
		assert.Equal(t, autherrors.ErrInvalidCredentials.Code, env.Code)
	})

	t.Run("missing role", func(t *testing.T) {
		w := performAuthenticate(h, `{"credentials":{}}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
