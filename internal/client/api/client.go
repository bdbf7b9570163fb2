package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andreicionca/motivare-absente/internal/auth"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/holiday"
	"github.com/andreicionca/motivare-absente/internal/media"
	"github.com/andreicionca/motivare-absente/internal/request"
	platform "github.com/andreicionca/motivare-absente/internal/shared/request"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"github.com/google/uuid"
)

const userAgent = "excusectl/1.0"

// Error is a failed call decoded from the error envelope.
type Error struct {
	Status  int
	Code    string
	Message string
	Details json.RawMessage
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

func (c *Client) Authenticate(ctx context.Context, req auth.AuthenticateRequest) (auth.AuthResponse, error) {
	var res auth.AuthResponse
	if err := c.postJSON(ctx, "/api/v1/auth/authenticate", req, &res, false); err != nil {
		return res, err
	}
	c.token = res.AccessToken
	return res, nil
}

func (c *Client) Me(ctx context.Context) (auth.UserResponse, error) {
	var res auth.UserResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, "", &res, false)
	return res, err
}

// UploadEvidence sends the image as multipart form data with its rotation.
func (c *Client) UploadEvidence(ctx context.Context, r io.Reader, filename, contentType string, rotation int) (media.UploadResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return media.UploadResult{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return media.UploadResult{}, err
	}
	if err := w.WriteField("rotation", strconv.Itoa(rotation)); err != nil {
		return media.UploadResult{}, err
	}
	if err := w.Close(); err != nil {
		return media.UploadResult{}, err
	}

	var res media.UploadResult
	err = c.do(ctx, http.MethodPost, "/api/v1/evidence/upload", &body, w.FormDataContentType(), &res, false)
	return res, err
}

func (c *Client) SubmitExcuse(ctx context.Context, req excuse.SubmitExcuseRequest) (excuse.ExcuseResponse, error) {
	var res excuse.ExcuseResponse
	err := c.postJSON(ctx, "/api/v1/excuses/submit", req, &res, true)
	return res, err
}

func (c *Client) SubmitShortLeave(ctx context.Context, req shortleave.SubmitShortLeaveRequest) (shortleave.ShortLeaveResponse, error) {
	var res shortleave.ShortLeaveResponse
	err := c.postJSON(ctx, "/api/v1/short-leaves/submit", req, &res, true)
	return res, err
}

func (c *Client) ListForStudent(ctx context.Context, req request.ListForStudentRequest) (request.StudentRequestsResponse, error) {
	var res request.StudentRequestsResponse
	err := c.postJSON(ctx, "/api/v1/requests/list-for-student", req, &res, false)
	return res, err
}

func (c *Client) ListForTeacher(ctx context.Context, req request.ListForTeacherRequest) (request.ClassRequestsResponse, error) {
	var res request.ClassRequestsResponse
	err := c.postJSON(ctx, "/api/v1/requests/list-for-teacher", req, &res, false)
	return res, err
}

func (c *Client) UpdateStatus(ctx context.Context, req request.UpdateStatusRequest) (request.StatusUpdateResponse, error) {
	var res request.StatusUpdateResponse
	err := c.postJSON(ctx, "/api/v1/requests/update-status", req, &res, false)
	return res, err
}

func (c *Client) FinalizeBatch(ctx context.Context, req request.BatchRequest) (request.FinalizeBatchResponse, error) {
	var res request.FinalizeBatchResponse
	err := c.postJSON(ctx, "/api/v1/requests/finalize-batch", req, &res, true)
	return res, err
}

func (c *Client) DeletePending(ctx context.Context, req request.DeletePendingRequest) (request.DeletePendingResponse, error) {
	var res request.DeletePendingResponse
	err := c.postJSON(ctx, "/api/v1/requests/delete-pending", req, &res, false)
	return res, err
}

func (c *Client) ExportScript(ctx context.Context, req request.BatchRequest) (request.ExportScriptResponse, error) {
	var res request.ExportScriptResponse
	err := c.postJSON(ctx, "/api/v1/requests/export-script", req, &res, false)
	return res, err
}

func (c *Client) ClassStats(ctx context.Context) (request.ClassStatsResponse, error) {
	var res request.ClassStatsResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/classes/stats", nil, "", &res, false)
	return res, err
}

// ClassStatsWorkbook returns the raw .xlsx body.
func (c *Client) ClassStatsWorkbook(ctx context.Context) ([]byte, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, "/api/v1/classes/stats/export", nil, "", false)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) Holidays(ctx context.Context, from, to string) ([]holiday.HolidayResponse, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := "/api/v1/holidays"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res []holiday.HolidayResponse
	err := c.do(ctx, http.MethodGet, path, nil, "", &res, false)
	return res, err
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, idempotent bool) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", out, idempotent)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string, idempotent bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Client-Type", platform.ClientCLI)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if idempotent {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, idempotent bool) error {
	req, err := c.newRequest(ctx, method, path, body, contentType, idempotent)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if !env.Success {
		return &Error{Status: resp.StatusCode, Code: env.Code, Message: env.Error, Details: env.Details}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func decodeError(status int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &Error{Status: status, Message: strings.TrimSpace(string(body))}
	}
	return &Error{Status: status, Code: env.Code, Message: env.Error, Details: env.Details}
}
