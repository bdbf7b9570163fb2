package excuse

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	excuseerrors "github.com/andreicionca/motivare-absente/internal/excuse/errors"
	"github.com/andreicionca/motivare-absente/internal/holiday"
	"github.com/andreicionca/motivare-absente/internal/media"
	"github.com/andreicionca/motivare-absente/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=excuse_service.go -destination=mock/excuse_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, p domain.Principal, req SubmitExcuseRequest) (ExcuseResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	holidays       holiday.Service
	hoursPerDay    int
	evidenceFolder string
	logger         *zap.Logger
}

// NewService builds the excuse service. Evidence must live under
// evidenceFolder on the media host; an empty folder accepts any hosted image.
func NewService(db *sql.DB, repo Repository, holidays holiday.Service, hoursPerDay int, evidenceFolder string, logger ...*zap.Logger) Service {
	l := zap.L().Named("excuse.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("excuse.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		holidays:       holidays,
		hoursPerDay:    hoursPerDay,
		evidenceFolder: strings.Trim(evidenceFolder, "/"),
		logger:         l,
	}
}

type submitInput struct {
	studentID uuid.UUID
	start     time.Time
	end       *time.Time
}

func (s *service) Submit(ctx context.Context, p domain.Principal, req SubmitExcuseRequest) (ExcuseResponse, error) {
	s.logger.Debug("submit excuse requested",
		zap.String("actor_id", p.UserID),
		zap.String("student_id", req.StudentID),
		zap.String("category", req.Category),
		zap.String("period_start", req.PeriodStart),
	)

	in, err := validateSubmitRequest(p, req)
	if err != nil {
		s.logger.Warn("submit excuse validation failed", zap.Error(err))
		return ExcuseResponse{}, err
	}

	end := in.start
	if in.end != nil {
		end = *in.end
	}
	hours, err := DeductedHours(ctx, s.holidays, s.hoursPerDay, req.Category, in.start, end)
	if err != nil {
		s.logger.Error("submit excuse hours lookup failed", zap.Error(err))
		return ExcuseResponse{}, err
	}

	publicID, err := s.evidencePublicID(req)
	if err != nil {
		s.logger.Warn("submit excuse evidence rejected",
			zap.String("evidence_url", req.EvidenceURL),
			zap.String("evidence_public_id", req.EvidencePublicID),
			zap.Error(err),
		)
		return ExcuseResponse{}, err
	}

	e := &Excuse{
		ID:               uuid.New(),
		StudentID:        in.studentID,
		Category:         req.Category,
		PeriodStart:      in.start,
		PeriodEnd:        in.end,
		Reason:           trimmedOrNil(req.Reason),
		EvidenceURL:      strings.TrimSpace(req.EvidenceURL),
		EvidencePublicID: publicID,
		SubmittedBy:      req.SubmittedBy,
		HoursDeducted:    hours,
		Status:           domain.ExcusePending,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit excuse begin tx failed", zap.Error(err))
		return ExcuseResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
		s.logger.Error("submit excuse persist failed", zap.Error(err))
		return ExcuseResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit excuse commit failed", zap.Error(err))
		return ExcuseResponse{}, err
	}
	s.logger.Info("submit excuse success",
		zap.String("excuse_id", e.ID.String()),
		zap.String("student_id", e.StudentID.String()),
		zap.Int("hours_deducted", e.HoursDeducted),
	)

	return ToResponse(*e), nil
}

// evidencePublicID derives the media host id from the delivery URL. The id
// is what a withdrawal later destroys, so a client supplied id is only
// accepted when it names the same asset.
func (s *service) evidencePublicID(req SubmitExcuseRequest) (string, error) {
	derived := media.PublicIDFromURL(strings.TrimSpace(req.EvidenceURL))
	if derived == "" {
		return "", excuseerrors.ErrEvidenceNotHosted
	}
	if s.evidenceFolder != "" && !strings.HasPrefix(derived, s.evidenceFolder+"/") {
		return "", excuseerrors.ErrEvidenceOutsideFolder
	}
	if claimed := strings.TrimSpace(req.EvidencePublicID); claimed != "" && claimed != derived {
		return "", excuseerrors.ErrEvidencePublicIDMismatch
	}
	return derived, nil
}

func validateSubmitRequest(p domain.Principal, req SubmitExcuseRequest) (submitInput, error) {
	var in submitInput

	switch {
	case strings.TrimSpace(req.StudentID) == "":
		return in, apperror.RequiredField("student_id")
	case strings.TrimSpace(req.Category) == "":
		return in, apperror.RequiredField("category")
	case strings.TrimSpace(req.PeriodStart) == "":
		return in, apperror.RequiredField("period_start")
	case strings.TrimSpace(req.EvidenceURL) == "":
		return in, apperror.RequiredField("evidence_url")
	case strings.TrimSpace(req.SubmittedBy) == "":
		return in, apperror.RequiredField("submitted_by")
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return in, excuseerrors.ErrInvalidStudentID
	}
	in.studentID = studentID

	if !domain.ValidCategory(domain.KindExcuse, req.Category) {
		return in, excuseerrors.ErrInvalidCategory
	}

	if in.start, err = parseDate(req.PeriodStart); err != nil {
		return in, err
	}
	if req.PeriodEnd != nil && strings.TrimSpace(*req.PeriodEnd) != "" {
		end, err := parseDate(*req.PeriodEnd)
		if err != nil {
			return in, err
		}
		if end.Before(in.start) {
			return in, excuseerrors.ErrInvalidDateRange
		}
		in.end = &end
	}

	u, err := url.Parse(strings.TrimSpace(req.EvidenceURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return in, excuseerrors.ErrInvalidEvidenceURL
	}

	role, ok := domain.ParseRole(req.SubmittedBy)
	if !ok || role == domain.RoleTeacher || role != p.Role {
		return in, excuseerrors.ErrInvalidSubmitter
	}
	if !p.ActsFor(studentID.String()) {
		return in, excuseerrors.ErrNotOwnStudent
	}

	return in, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, excuseerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
