package shortleave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
	shortleaveerrors "github.com/andreicionca/motivare-absente/internal/shortleave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=shortleave_service.go -destination=mock/shortleave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, p domain.Principal, req SubmitShortLeaveRequest) (ShortLeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("shortleave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shortleave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Submit(ctx context.Context, p domain.Principal, req SubmitShortLeaveRequest) (ShortLeaveResponse, error) {
	s.logger.Debug("submit short leave requested",
		zap.String("actor_id", p.UserID),
		zap.String("student_id", req.StudentID),
		zap.String("category", req.Category),
		zap.String("date", req.Date),
	)

	studentID, date, requested, err := validateSubmitRequest(p, req)
	if err != nil {
		s.logger.Warn("submit short leave validation failed", zap.Error(err))
		return ShortLeaveResponse{}, err
	}

	l := &ShortLeave{
		ID:               uuid.New(),
		StudentID:        studentID,
		Category:         req.Category,
		Date:             date,
		StartTime:        strings.TrimSpace(req.StartTime),
		EndTime:          strings.TrimSpace(req.EndTime),
		RequestedHours:   requested,
		HoursDeducted:    DeductedHours(req.Category, requested),
		Reason:           strings.TrimSpace(req.Reason),
		SubmittedBy:      req.SubmittedBy,
		GuardianApproved: p.Role == domain.RoleParent,
		Status:           domain.ShortLeaveSubmitted,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit short leave begin tx failed", zap.Error(err))
		return ShortLeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("submit short leave persist failed", zap.Error(err))
		return ShortLeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit short leave commit failed", zap.Error(err))
		return ShortLeaveResponse{}, err
	}
	s.logger.Info("submit short leave success",
		zap.String("short_leave_id", l.ID.String()),
		zap.String("student_id", l.StudentID.String()),
		zap.Int("requested_hours", l.RequestedHours),
		zap.Bool("guardian_approved", l.GuardianApproved),
	)

	return ToResponse(*l), nil
}

func validateSubmitRequest(p domain.Principal, req SubmitShortLeaveRequest) (uuid.UUID, time.Time, int, error) {
	switch {
	case strings.TrimSpace(req.StudentID) == "":
		return uuid.Nil, time.Time{}, 0, apperror.RequiredField("student_id")
	case strings.TrimSpace(req.Category) == "":
		return uuid.Nil, time.Time{}, 0, apperror.RequiredField("category")
	case strings.TrimSpace(req.Date) == "":
		return uuid.Nil, time.Time{}, 0, apperror.RequiredField("date")
	case strings.TrimSpace(req.StartTime) == "":
		return uuid.Nil, time.Time{}, 0, apperror.RequiredField("start_time")
	case strings.TrimSpace(req.EndTime) == "":
		return uuid.Nil, time.Time{}, 0, apperror.RequiredField("end_time")
	case strings.TrimSpace(req.Reason) == "":
		return uuid.Nil, time.Time{}, 0, apperror.RequiredField("reason")
	case strings.TrimSpace(req.SubmittedBy) == "":
		return uuid.Nil, time.Time{}, 0, apperror.RequiredField("submitted_by")
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return uuid.Nil, time.Time{}, 0, shortleaveerrors.ErrInvalidStudentID
	}
	if !domain.ValidCategory(domain.KindShortLeave, req.Category) {
		return uuid.Nil, time.Time{}, 0, shortleaveerrors.ErrInvalidCategory
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return uuid.Nil, time.Time{}, 0, shortleaveerrors.ErrInvalidDateFormat
	}

	requested, err := RequestedHours(req.StartTime, req.EndTime)
	if err != nil {
		return uuid.Nil, time.Time{}, 0, err
	}

	role, ok := domain.ParseRole(req.SubmittedBy)
	if !ok || role == domain.RoleTeacher || role != p.Role {
		return uuid.Nil, time.Time{}, 0, shortleaveerrors.ErrInvalidSubmitter
	}
	if !p.ActsFor(studentID.String()) {
		return uuid.Nil, time.Time{}, 0, shortleaveerrors.ErrNotOwnStudent
	}

	return studentID, date, requested, nil
}
