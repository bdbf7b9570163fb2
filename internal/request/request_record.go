package request

import (
	"context"
	"database/sql"
	"errors"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	requesterrors "github.com/andreicionca/motivare-absente/internal/request/errors"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"gorm.io/gorm"
)

// record is one locked row of either kind, seen through the shared stage
// machine.
type record struct {
	kind   domain.RequestKind
	status domain.RequestStatus
	excuse *excuse.Excuse
	leave  *shortleave.ShortLeave
}

func (r record) id() string {
	if r.excuse != nil {
		return r.excuse.ID.String()
	}
	return r.leave.ID.String()
}

func (r record) studentID() string {
	if r.excuse != nil {
		return r.excuse.StudentID.String()
	}
	return r.leave.StudentID.String()
}

func (s *service) lockRecord(ctx context.Context, tx *sql.Tx, kind domain.RequestKind, id string) (record, error) {
	switch kind {
	case domain.KindExcuse:
		e, err := s.excuses.WithTx(tx).FindByIDForUpdate(ctx, id)
		if err != nil {
			return record{}, mapRepositoryError(err)
		}
		return record{kind: kind, status: e.RequestStatus(), excuse: e}, nil
	default:
		l, err := s.shortLeaves.WithTx(tx).FindByIDForUpdate(ctx, id)
		if err != nil {
			return record{}, mapRepositoryError(err)
		}
		return record{kind: kind, status: l.RequestStatus(), leave: l}, nil
	}
}

func (s *service) saveRecord(ctx context.Context, tx *sql.Tx, r record) error {
	if r.excuse != nil {
		return s.excuses.WithTx(tx).Update(ctx, r.excuse)
	}
	return s.shortLeaves.WithTx(tx).Update(ctx, r.leave)
}

// authorizeFor checks that the principal may act on the student's records:
// the homeroom teacher of the student's class or the student and parent.
func (s *service) authorizeFor(ctx context.Context, p domain.Principal, studentID string) error {
	if p.Role != domain.RoleTeacher {
		if !p.ActsFor(studentID) {
			return requesterrors.ErrNotOwnRecord
		}
		return nil
	}
	st, err := s.students.FindStudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return requesterrors.ErrStudentNotFound
		}
		return err
	}
	if p.Class == "" || st.Class != p.Class {
		return requesterrors.ErrNotOwnClass
	}
	return nil
}
