package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andreicionca/motivare-absente/internal/auth"
	"github.com/andreicionca/motivare-absente/internal/client/api"
	"github.com/andreicionca/motivare-absente/internal/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Authenticate(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/authenticate", r.URL.Path)
		assert.Equal(t, "cli", r.Header.Get("X-Client-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":"u-1","role":"teacher","class":"9A"},"access_token":"jwt-token"}}`))
	})

	c := api.New(srv.URL + "/")
	res, err := c.Authenticate(context.Background(), auth.AuthenticateRequest{})

	require.NoError(t, err)
	assert.Equal(t, "teacher", res.User.Role)
	assert.Equal(t, "jwt-token", c.Token())
}

func TestClient_SendsTokenAndIdempotencyKey(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		var req request.BatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"e-1"}, req.ExcuseIDs)
		_, _ = w.Write([]byte(`{"success":true,"data":{"finalized":{"excuse_ids":["e-1"],"short_leave_ids":[]},"skipped":{"excuse_ids":[],"short_leave_ids":[]}}}`))
	})

	c := api.New(srv.URL, api.WithToken("secret"))
	res, err := c.FinalizeBatch(context.Background(), request.BatchRequest{ExcuseIDs: []string{"e-1"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"e-1"}, res.Finalized.ExcuseIDs)
}

func TestClient_Errors(t *testing.T) {
	t.Run("envelope error keeps code and details", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"error":"request is not approved","code":"VALIDATION_ERROR","details":{"excuse_ids":["e-1"]}}`))
		})

		_, err := api.New(srv.URL).FinalizeBatch(context.Background(), request.BatchRequest{ExcuseIDs: []string{"e-1"}})

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
		assert.Equal(t, "request is not approved", apiErr.Message)
		assert.JSONEq(t, `{"excuse_ids":["e-1"]}`, string(apiErr.Details))
		assert.Contains(t, apiErr.Error(), "VALIDATION_ERROR")
	})

	t.Run("plain body is carried as the message", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway\n"))
		})

		_, err := api.New(srv.URL).ClassStats(context.Background())

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "bad gateway", apiErr.Message)
	})

	t.Run("workbook error decodes the envelope", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"success":false,"error":"forbidden","code":"FORBIDDEN"}`))
		})

		_, err := api.New(srv.URL).ClassStatsWorkbook(context.Background())

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "FORBIDDEN", apiErr.Code)
	})

	t.Run("workbook body is returned raw", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			_, _ = w.Write([]byte("PK\x03\x04"))
		})

		body, err := api.New(srv.URL).ClassStatsWorkbook(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []byte("PK\x03\x04"), body)
	})
}

func TestClient_HolidaysQuery(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "", r.URL.Query().Get("to"))
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	res, err := api.New(srv.URL).Holidays(context.Background(), "2025-03-01", "")

	require.NoError(t, err)
	assert.Empty(t, res)
}
