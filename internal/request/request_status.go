package request

import (
	"context"
	"strings"

	"github.com/andreicionca/motivare-absente/internal/domain"
	requesterrors "github.com/andreicionca/motivare-absente/internal/request/errors"
	"github.com/andreicionca/motivare-absente/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *service) UpdateStatus(ctx context.Context, p domain.Principal, req UpdateStatusRequest) (StatusUpdateResponse, error) {
	s.logger.Debug("update status requested",
		zap.String("actor_id", p.UserID),
		zap.String("kind", req.Kind),
		zap.String("record_id", req.RecordID),
		zap.String("new_status", req.NewStatus),
	)

	switch {
	case strings.TrimSpace(req.RecordID) == "":
		return StatusUpdateResponse{}, apperror.RequiredField("record_id")
	case strings.TrimSpace(req.NewStatus) == "":
		return StatusUpdateResponse{}, apperror.RequiredField("new_status")
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		return StatusUpdateResponse{}, err
	}
	id, err := uuid.Parse(strings.TrimSpace(req.RecordID))
	if err != nil {
		return StatusUpdateResponse{}, requesterrors.ErrInvalidRecordID
	}
	target, ok := domain.TargetStage(kind, strings.TrimSpace(req.NewStatus))
	if !ok {
		return StatusUpdateResponse{}, requesterrors.ErrInvalidStatus
	}
	if p.Role == domain.RoleStudent {
		return StatusUpdateResponse{}, apperror.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update status begin tx failed", zap.Error(err))
		return StatusUpdateResponse{}, err
	}
	defer tx.Rollback()

	rec, err := s.lockRecord(ctx, tx, kind, id.String())
	if err != nil {
		s.logger.Warn("update status load failed", zap.Error(err))
		return StatusUpdateResponse{}, err
	}
	if err := s.authorizeFor(ctx, p, rec.studentID()); err != nil {
		s.logger.Warn("update status denied", zap.String("actor_id", p.UserID), zap.Error(err))
		return StatusUpdateResponse{}, err
	}

	from := rec.status.Stage
	if from == domain.StageFinalized {
		return StatusUpdateResponse{}, requesterrors.ErrRecordFinalized
	}
	if !domain.CanTransition(kind, from, target, p.Role) {
		s.logger.Warn("update status invalid transition",
			zap.String("from", string(from)),
			zap.String("to", string(target)),
			zap.String("role", string(p.Role)),
		)
		return StatusUpdateResponse{}, requesterrors.ErrInvalidTransition.WithDetails(map[string]string{
			"from": string(from),
			"to":   string(target),
		})
	}

	s.applyTransition(rec, target, trimmedOrNil(req.Reason))

	if err := s.saveRecord(ctx, tx, rec); err != nil {
		s.logger.Error("update status persist failed", zap.Error(err))
		return StatusUpdateResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update status commit failed", zap.Error(err))
		return StatusUpdateResponse{}, err
	}

	label := domain.LabelFor(kind, target)
	s.logger.Info("update status success",
		zap.String("kind", string(kind)),
		zap.String("record_id", rec.id()),
		zap.String("status", label),
	)
	return StatusUpdateResponse{
		Kind:     string(kind),
		RecordID: rec.id(),
		Status:   label,
		Stage:    string(target),
	}, nil
}

func (s *service) applyTransition(rec record, target domain.Stage, note *string) {
	now := s.now()
	label := domain.LabelFor(rec.kind, target)

	if e := rec.excuse; e != nil {
		e.Status = label
		if note != nil {
			e.ReviewNote = note
		}
		if target == domain.StageApproved || target == domain.StageRejected {
			e.ProcessedAt = &now
		}
		return
	}

	l := rec.leave
	l.Status = label
	if note != nil {
		l.ReviewNote = note
	}
	switch target {
	case domain.StageAwaitingTeacher:
		l.GuardianApproved = true
	case domain.StageApproved:
		l.TeacherAcceptedAt = &now
	case domain.StageRejected:
		l.ProcessedAt = &now
	}
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
