package request

import (
	"context"
	"database/sql"
	"sort"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/quota"
	requesterrors "github.com/andreicionca/motivare-absente/internal/request/errors"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"go.uber.org/zap"
)

func finalizeLockKey(class string) string {
	return "finalize:" + class
}

// FinalizeBatch moves approved records to finalized and returns the quota of
// every affected student, read back from the rows inside the same transaction.
// Records already finalized are reported as skipped and left untouched.
func (s *service) FinalizeBatch(ctx context.Context, p domain.Principal, req BatchRequest) (FinalizeBatchResponse, error) {
	s.logger.Debug("finalize batch requested",
		zap.String("actor_id", p.UserID),
		zap.Int("excuses", len(req.ExcuseIDs)),
		zap.Int("short_leaves", len(req.ShortLeaveIDs)),
	)

	class, err := teacherClass(p, "")
	if err != nil {
		return FinalizeBatchResponse{}, err
	}
	excuseIDs, err := parseIDs(req.ExcuseIDs)
	if err != nil {
		return FinalizeBatchResponse{}, err
	}
	leaveIDs, err := parseIDs(req.ShortLeaveIDs)
	if err != nil {
		return FinalizeBatchResponse{}, err
	}
	if len(excuseIDs) == 0 && len(leaveIDs) == 0 {
		return FinalizeBatchResponse{}, requesterrors.ErrEmptyBatch
	}

	key := finalizeLockKey(class)
	token, acquired, err := s.locker.Lock(ctx, key, s.settings.LockTTL)
	if err != nil {
		s.logger.Error("finalize batch lock failed", zap.String("class", class), zap.Error(err))
		return FinalizeBatchResponse{}, err
	}
	if !acquired {
		s.logger.Warn("finalize batch already running", zap.String("class", class))
		return FinalizeBatchResponse{}, requesterrors.ErrFinalizeInProgress
	}
	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			s.logger.Warn("finalize batch unlock failed", zap.String("class", class), zap.Error(err))
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("finalize batch begin tx failed", zap.Error(err))
		return FinalizeBatchResponse{}, err
	}
	defer tx.Rollback()

	excuses, err := s.excuses.WithTx(tx).FindByIDsForUpdate(ctx, excuseIDs)
	if err != nil {
		s.logger.Error("finalize batch load excuses failed", zap.Error(err))
		return FinalizeBatchResponse{}, err
	}
	leaves, err := s.shortLeaves.WithTx(tx).FindByIDsForUpdate(ctx, leaveIDs)
	if err != nil {
		s.logger.Error("finalize batch load short leaves failed", zap.Error(err))
		return FinalizeBatchResponse{}, err
	}
	if missing := missingIDs(excuseIDs, excuses, leaveIDs, leaves); len(missing) > 0 {
		return FinalizeBatchResponse{}, requesterrors.ErrRecordNotFound.WithDetails(missing)
	}
	if err := s.checkClass(ctx, class, excuses, leaves); err != nil {
		return FinalizeBatchResponse{}, err
	}

	res := FinalizeBatchResponse{
		Finalized: BatchIDs{ExcuseIDs: []string{}, ShortLeaveIDs: []string{}},
		Skipped:   BatchIDs{ExcuseIDs: []string{}, ShortLeaveIDs: []string{}},
		Quota:     map[string]quota.Summary{},
	}
	var notApproved []string
	for _, e := range excuses {
		switch e.RequestStatus().Stage {
		case domain.StageFinalized:
			res.Skipped.ExcuseIDs = append(res.Skipped.ExcuseIDs, e.ID.String())
		case domain.StageApproved:
		default:
			notApproved = append(notApproved, e.ID.String())
		}
	}
	for _, l := range leaves {
		switch l.RequestStatus().Stage {
		case domain.StageFinalized:
			res.Skipped.ShortLeaveIDs = append(res.Skipped.ShortLeaveIDs, l.ID.String())
		case domain.StageApproved:
		default:
			notApproved = append(notApproved, l.ID.String())
		}
	}
	if len(notApproved) > 0 {
		s.logger.Warn("finalize batch contains unapproved records", zap.Strings("ids", notApproved))
		return FinalizeBatchResponse{}, requesterrors.ErrNotApproved.WithDetails(notApproved)
	}

	now := s.now()
	affected := map[string]struct{}{}
	excuseRepo := s.excuses.WithTx(tx)
	for i := range excuses {
		e := &excuses[i]
		affected[e.StudentID.String()] = struct{}{}
		if e.RequestStatus().Stage != domain.StageApproved {
			continue
		}
		hours, err := excuse.DeductedHours(ctx, s.holidays, s.settings.HoursPerDay, e.Category, e.PeriodStart, e.End())
		if err != nil {
			s.logger.Error("finalize batch hours lookup failed", zap.Error(err))
			return FinalizeBatchResponse{}, err
		}
		e.HoursDeducted = hours
		e.Status = domain.ExcuseFinalized
		e.ProcessedAt = &now
		if err := excuseRepo.Update(ctx, e); err != nil {
			s.logger.Error("finalize batch persist excuse failed", zap.Error(err))
			return FinalizeBatchResponse{}, mapRepositoryError(err)
		}
		res.Finalized.ExcuseIDs = append(res.Finalized.ExcuseIDs, e.ID.String())
	}

	leaveRepo := s.shortLeaves.WithTx(tx)
	for i := range leaves {
		l := &leaves[i]
		affected[l.StudentID.String()] = struct{}{}
		if l.RequestStatus().Stage != domain.StageApproved {
			continue
		}
		l.HoursDeducted = shortleave.DeductedHours(l.Category, l.RequestedHours)
		l.Status = domain.ShortLeaveFinalized
		l.ProcessedAt = &now
		if err := leaveRepo.Update(ctx, l); err != nil {
			s.logger.Error("finalize batch persist short leave failed", zap.Error(err))
			return FinalizeBatchResponse{}, mapRepositoryError(err)
		}
		res.Finalized.ShortLeaveIDs = append(res.Finalized.ShortLeaveIDs, l.ID.String())
	}

	if err := s.recomputeQuota(ctx, tx, affected, res.Quota); err != nil {
		s.logger.Error("finalize batch quota recompute failed", zap.Error(err))
		return FinalizeBatchResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("finalize batch commit failed", zap.Error(err))
		return FinalizeBatchResponse{}, err
	}
	s.logger.Info("finalize batch success",
		zap.String("class", class),
		zap.Int("finalized_excuses", len(res.Finalized.ExcuseIDs)),
		zap.Int("finalized_short_leaves", len(res.Finalized.ShortLeaveIDs)),
		zap.Int("skipped", len(res.Skipped.ExcuseIDs)+len(res.Skipped.ShortLeaveIDs)),
	)
	return res, nil
}

func (s *service) recomputeQuota(ctx context.Context, tx *sql.Tx, students map[string]struct{}, out map[string]quota.Summary) error {
	ids := make([]string, 0, len(students))
	for id := range students {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	excuseRepo := s.excuses.WithTx(tx)
	leaveRepo := s.shortLeaves.WithTx(tx)
	for _, id := range ids {
		excuses, err := excuseRepo.ListByStudent(ctx, id)
		if err != nil {
			return err
		}
		leaves, err := leaveRepo.ListByStudent(ctx, id)
		if err != nil {
			return err
		}
		out[id] = s.summary(excuses, leaves)
	}
	return nil
}

// checkClass refuses a batch touching students outside the teacher's class.
func (s *service) checkClass(ctx context.Context, class string, excuses []excuse.Excuse, leaves []shortleave.ShortLeave) error {
	students, err := s.students.ListStudentsByClass(ctx, class)
	if err != nil {
		return err
	}
	members := studentNames(students)

	var foreign []string
	for _, e := range excuses {
		if _, ok := members[e.StudentID.String()]; !ok {
			foreign = append(foreign, e.ID.String())
		}
	}
	for _, l := range leaves {
		if _, ok := members[l.StudentID.String()]; !ok {
			foreign = append(foreign, l.ID.String())
		}
	}
	if len(foreign) > 0 {
		return requesterrors.ErrNotOwnClass.WithDetails(foreign)
	}
	return nil
}

func missingIDs(excuseIDs []string, excuses []excuse.Excuse, leaveIDs []string, leaves []shortleave.ShortLeave) []string {
	found := make(map[string]struct{}, len(excuses)+len(leaves))
	for _, e := range excuses {
		found[e.ID.String()] = struct{}{}
	}
	for _, l := range leaves {
		found[l.ID.String()] = struct{}{}
	}

	var missing []string
	for _, id := range append(append([]string{}, excuseIDs...), leaveIDs...) {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
