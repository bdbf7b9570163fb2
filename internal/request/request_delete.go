package request

import (
	"context"
	"database/sql"
	"strings"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/events"
	"github.com/andreicionca/motivare-absente/internal/media"
	"github.com/andreicionca/motivare-absente/internal/messaging/kafka"
	requesterrors "github.com/andreicionca/motivare-absente/internal/request/errors"
	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
	"github.com/andreicionca/motivare-absente/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeletePending withdraws a request nobody but its submitter has acted on. An
// excuse's evidence image is released through the outbox in the same
// transaction as the delete.
func (s *service) DeletePending(ctx context.Context, p domain.Principal, req DeletePendingRequest) (DeletePendingResponse, error) {
	s.logger.Debug("delete pending requested",
		zap.String("actor_id", p.UserID),
		zap.String("kind", req.Kind),
		zap.String("record_id", req.RecordID),
	)

	if strings.TrimSpace(req.RecordID) == "" {
		return DeletePendingResponse{}, apperror.RequiredField("record_id")
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		return DeletePendingResponse{}, err
	}
	id, err := uuid.Parse(strings.TrimSpace(req.RecordID))
	if err != nil {
		return DeletePendingResponse{}, requesterrors.ErrInvalidRecordID
	}
	if p.Role == domain.RoleTeacher {
		return DeletePendingResponse{}, requesterrors.ErrNotOwnRecord
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete pending begin tx failed", zap.Error(err))
		return DeletePendingResponse{}, err
	}
	defer tx.Rollback()

	rec, err := s.lockRecord(ctx, tx, kind, id.String())
	if err != nil {
		s.logger.Warn("delete pending load failed", zap.Error(err))
		return DeletePendingResponse{}, err
	}
	if !p.ActsFor(rec.studentID()) {
		s.logger.Warn("delete pending denied", zap.String("actor_id", p.UserID))
		return DeletePendingResponse{}, requesterrors.ErrNotOwnRecord
	}
	if !rec.status.IsWithdrawable() {
		s.logger.Warn("delete pending not withdrawable",
			zap.String("record_id", rec.id()),
			zap.String("status", rec.status.Label),
		)
		return DeletePendingResponse{}, requesterrors.ErrNotWithdrawable
	}

	res := DeletePendingResponse{Kind: string(kind), RecordID: rec.id()}
	switch kind {
	case domain.KindExcuse:
		if err := s.excuses.WithTx(tx).Delete(ctx, rec.id()); err != nil {
			s.logger.Error("delete pending persist failed", zap.Error(err))
			return DeletePendingResponse{}, mapRepositoryError(err)
		}
		scheduled, err := s.scheduleEvidenceRelease(ctx, tx, p, rec)
		if err != nil {
			s.logger.Error("delete pending outbox failed", zap.Error(err))
			return DeletePendingResponse{}, err
		}
		res.EvidenceReleaseScheduled = scheduled
	default:
		if err := s.shortLeaves.WithTx(tx).Delete(ctx, rec.id()); err != nil {
			s.logger.Error("delete pending persist failed", zap.Error(err))
			return DeletePendingResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete pending commit failed", zap.Error(err))
		return DeletePendingResponse{}, err
	}
	s.logger.Info("delete pending success",
		zap.String("kind", string(kind)),
		zap.String("record_id", rec.id()),
		zap.Bool("evidence_release_scheduled", res.EvidenceReleaseScheduled),
	)
	return res, nil
}

func (s *service) scheduleEvidenceRelease(ctx context.Context, tx *sql.Tx, p domain.Principal, rec record) (bool, error) {
	publicID := strings.TrimSpace(rec.excuse.EvidencePublicID)
	if publicID == "" {
		publicID = media.PublicIDFromURL(rec.excuse.EvidenceURL)
	}
	if publicID == "" {
		return false, nil
	}

	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		string(domain.KindExcuse),
		rec.id(),
		events.EvidenceReleaseRequestedType,
		events.EvidenceReleaseTopic,
		events.EvidenceReleaseRequestedEvent{
			EventType:   events.EvidenceReleaseRequestedType,
			RecordID:    rec.id(),
			PublicID:    publicID,
			RequestedBy: p.UserID,
			OccurredAt:  s.now().UTC(),
		},
	)
	if err != nil {
		return false, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return false, err
	}
	return true, nil
}
