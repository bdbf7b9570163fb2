package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/media"
	"github.com/andreicionca/motivare-absente/internal/quota"
	"github.com/andreicionca/motivare-absente/internal/request"
	"github.com/andreicionca/motivare-absente/internal/shortleave"
)

// StudentAPI is what the student and parent views call on the server.
type StudentAPI interface {
	ListForStudent(ctx context.Context, req request.ListForStudentRequest) (request.StudentRequestsResponse, error)
	UploadEvidence(ctx context.Context, r io.Reader, filename, contentType string, rotation int) (media.UploadResult, error)
	SubmitExcuse(ctx context.Context, req excuse.SubmitExcuseRequest) (excuse.ExcuseResponse, error)
	SubmitShortLeave(ctx context.Context, req shortleave.SubmitShortLeaveRequest) (shortleave.ShortLeaveResponse, error)
	DeletePending(ctx context.Context, req request.DeletePendingRequest) (request.DeletePendingResponse, error)
	UpdateStatus(ctx context.Context, req request.UpdateStatusRequest) (request.StatusUpdateResponse, error)
}

var ErrParentOnly = errors.New("only a parent can review a student's short leave")

type ExcuseForm struct {
	Category    string
	PeriodStart string
	PeriodEnd   string
	Reason      string
}

type ShortLeaveForm struct {
	Category  string
	Date      string
	StartTime string
	EndTime   string
	Reason    string
}

// StudentController holds the state of the student and parent views.
type StudentController struct {
	api     StudentAPI
	user    domain.User
	student domain.Student
	Upload  *UploadFlow

	mu     sync.RWMutex
	items  []Item
	quota  quota.Summary
	filter Filter
}

// NewStudentController builds the view of a student or of a parent acting
// for their child. Any other user gets ErrNotStudentView.
func NewStudentController(api StudentAPI, user domain.User) (*StudentController, error) {
	student, err := studentOf(user)
	if err != nil {
		return nil, err
	}
	return &StudentController{api: api, user: user, student: student, Upload: NewUploadFlow()}, nil
}

func (s *StudentController) User() domain.User { return s.user }

// Load replaces the lists with a fresh copy from the server. On failure the
// previous lists stay.
func (s *StudentController) Load(ctx context.Context) error {
	res, err := s.api.ListForStudent(ctx, request.ListForStudentRequest{StudentID: s.student.ID.String()})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = itemsOf(res.Excuses, res.ShortLeaves)
	s.quota = res.Quota
	return nil
}

func (s *StudentController) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *StudentController) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *StudentController) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.items...)
}

// Visible is the loaded list narrowed by the current filter.
func (s *StudentController) Visible() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterItems(s.items, s.filter)
}

func (s *StudentController) Quota() quota.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quota
}

// SubmitExcuse uploads the selected image and then submits the excuse. An
// image whose submit fails stays on the media host.
func (s *StudentController) SubmitExcuse(ctx context.Context, form ExcuseForm) (excuse.ExcuseResponse, error) {
	file, rotation, err := s.Upload.begin()
	if err != nil {
		return excuse.ExcuseResponse{}, err
	}

	uploaded, err := s.api.UploadEvidence(ctx, bytes.NewReader(file.Data), file.Name, file.ContentType, rotation)
	if err != nil {
		s.Upload.fail()
		return excuse.ExcuseResponse{}, err
	}

	req := excuse.SubmitExcuseRequest{
		StudentID:        s.student.ID.String(),
		Category:         form.Category,
		PeriodStart:      form.PeriodStart,
		EvidenceURL:      uploaded.URL,
		EvidencePublicID: uploaded.PublicID,
		SubmittedBy:      string(s.user.Role()),
	}
	if form.PeriodEnd != "" {
		req.PeriodEnd = &form.PeriodEnd
	}
	if form.Reason != "" {
		req.Reason = &form.Reason
	}

	res, err := s.api.SubmitExcuse(ctx, req)
	if err != nil {
		s.Upload.fail()
		return excuse.ExcuseResponse{}, err
	}
	s.Upload.done()

	return res, s.Load(ctx)
}

func (s *StudentController) SubmitShortLeave(ctx context.Context, form ShortLeaveForm) (shortleave.ShortLeaveResponse, error) {
	res, err := s.api.SubmitShortLeave(ctx, shortleave.SubmitShortLeaveRequest{
		StudentID:   s.student.ID.String(),
		Category:    form.Category,
		Date:        form.Date,
		StartTime:   form.StartTime,
		EndTime:     form.EndTime,
		Reason:      form.Reason,
		SubmittedBy: string(s.user.Role()),
	})
	if err != nil {
		return shortleave.ShortLeaveResponse{}, err
	}
	return res, s.Load(ctx)
}

func (s *StudentController) Withdraw(ctx context.Context, key ItemKey) error {
	_, err := s.api.DeletePending(ctx, request.DeletePendingRequest{Kind: string(key.Kind), RecordID: key.ID})
	if err != nil {
		return err
	}
	return s.Load(ctx)
}

// ReviewShortLeave is the parent's approval or refusal of a short leave the
// student submitted.
func (s *StudentController) ReviewShortLeave(ctx context.Context, id string, approve bool) error {
	if _, ok := s.user.(domain.Parent); !ok {
		return ErrParentOnly
	}
	status := domain.ShortLeaveRejected
	if approve {
		status = domain.ShortLeaveParentApproved
	}
	_, err := s.api.UpdateStatus(ctx, request.UpdateStatusRequest{
		Kind:      string(domain.KindShortLeave),
		RecordID:  id,
		NewStatus: status,
	})
	if err != nil {
		return err
	}
	return s.Load(ctx)
}
