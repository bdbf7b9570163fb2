package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andreicionca/motivare-absente/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func newRouter(p app.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	app.Use(r, zap.NewNop())
	r.GET("/ping", app.Ping(p))
	return r
}

func TestPing(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(fakePinger{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})

	t.Run("negative store down", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(fakePinger{err: errors.New("dial tcp: refused")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "dial tcp: refused")
	})
}

func TestUse_UnknownRoutes(t *testing.T) {
	r := newRouter(fakePinger{})

	t.Run("wrong method is 405", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("unknown path", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
