package request_test

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/holiday"
	"github.com/andreicionca/motivare-absente/internal/messaging/kafka"
	"github.com/andreicionca/motivare-absente/internal/school"
	"github.com/andreicionca/motivare-absente/internal/schoolday"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"gorm.io/gorm"
)

// memStore keeps both record kinds and the roster in memory. Reads hand out
// copies so only Update persists a change.
type memStore struct {
	students map[string]school.Student
	excuses  map[string]excuse.Excuse
	leaves   map[string]shortleave.ShortLeave
}

func newMemStore() *memStore {
	return &memStore{
		students: map[string]school.Student{},
		excuses:  map[string]excuse.Excuse{},
		leaves:   map[string]shortleave.ShortLeave{},
	}
}

func (m *memStore) classOf(studentID string) string {
	return m.students[studentID].Class
}

type memExcuseRepo struct {
	excuse.Repository
	store *memStore
}

func (r *memExcuseRepo) WithTx(tx *sql.Tx) excuse.Repository { return r }

func (r *memExcuseRepo) FindByIDForUpdate(ctx context.Context, id string) (*excuse.Excuse, error) {
	e, ok := r.store.excuses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *memExcuseRepo) FindByIDsForUpdate(ctx context.Context, ids []string) ([]excuse.Excuse, error) {
	return r.FindByIDs(ctx, ids)
}

func (r *memExcuseRepo) FindByIDs(ctx context.Context, ids []string) ([]excuse.Excuse, error) {
	var out []excuse.Excuse
	for _, id := range ids {
		if e, ok := r.store.excuses[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memExcuseRepo) ListByStudent(ctx context.Context, studentID string) ([]excuse.Excuse, error) {
	var out []excuse.Excuse
	for _, e := range r.store.excuses {
		if e.StudentID.String() == studentID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *memExcuseRepo) ListByClass(ctx context.Context, class string) ([]excuse.Excuse, error) {
	var out []excuse.Excuse
	for _, e := range r.store.excuses {
		if r.store.classOf(e.StudentID.String()) == class {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *memExcuseRepo) Update(ctx context.Context, e *excuse.Excuse) error {
	r.store.excuses[e.ID.String()] = *e
	return nil
}

func (r *memExcuseRepo) Delete(ctx context.Context, id string) error {
	delete(r.store.excuses, id)
	return nil
}

type memShortLeaveRepo struct {
	shortleave.Repository
	store *memStore
}

func (r *memShortLeaveRepo) WithTx(tx *sql.Tx) shortleave.Repository { return r }

func (r *memShortLeaveRepo) FindByIDForUpdate(ctx context.Context, id string) (*shortleave.ShortLeave, error) {
	l, ok := r.store.leaves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *memShortLeaveRepo) FindByIDsForUpdate(ctx context.Context, ids []string) ([]shortleave.ShortLeave, error) {
	return r.FindByIDs(ctx, ids)
}

func (r *memShortLeaveRepo) FindByIDs(ctx context.Context, ids []string) ([]shortleave.ShortLeave, error) {
	var out []shortleave.ShortLeave
	for _, id := range ids {
		if l, ok := r.store.leaves[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memShortLeaveRepo) ListByStudent(ctx context.Context, studentID string) ([]shortleave.ShortLeave, error) {
	var out []shortleave.ShortLeave
	for _, l := range r.store.leaves {
		if l.StudentID.String() == studentID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *memShortLeaveRepo) ListByClass(ctx context.Context, class string) ([]shortleave.ShortLeave, error) {
	var out []shortleave.ShortLeave
	for _, l := range r.store.leaves {
		if r.store.classOf(l.StudentID.String()) == class {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *memShortLeaveRepo) Update(ctx context.Context, l *shortleave.ShortLeave) error {
	r.store.leaves[l.ID.String()] = *l
	return nil
}

func (r *memShortLeaveRepo) Delete(ctx context.Context, id string) error {
	delete(r.store.leaves, id)
	return nil
}

type memSchoolRepo struct {
	school.Repository
	store *memStore
}

func (r *memSchoolRepo) FindStudentByID(ctx context.Context, id string) (*school.Student, error) {
	st, ok := r.store.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &st, nil
}

func (r *memSchoolRepo) ListStudentsByClass(ctx context.Context, class string) ([]school.Student, error) {
	var out []school.Student
	for _, st := range r.store.students {
		if st.Class == class {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out, nil
}

type fakeHolidays struct {
	ranges []schoolday.Range
	err    error
}

func (f *fakeHolidays) Ranges(ctx context.Context, from, to time.Time) ([]schoolday.Range, error) {
	return f.ranges, f.err
}

func (f *fakeHolidays) List(ctx context.Context, from, to time.Time) ([]holiday.HolidayResponse, error) {
	return nil, f.err
}

type fakeOutbox struct {
	kafka.OutboxRepository
	created []kafka.OutboxEvent
	err     error
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}

type fakeLocker struct {
	held     bool
	err      error
	locked   []string
	unlocked []string
}

func (f *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	if f.held {
		return "", false, nil
	}
	f.locked = append(f.locked, key)
	return "token:" + key, true, nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, token string) error {
	if token != "token:"+key {
		return errors.New("unlock with foreign token")
	}
	f.unlocked = append(f.unlocked, key)
	return nil
}
