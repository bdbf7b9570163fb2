package excuse_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	excuseerrors "github.com/andreicionca/motivare-absente/internal/excuse/errors"
	"github.com/andreicionca/motivare-absente/internal/holiday"
	"github.com/andreicionca/motivare-absente/internal/schoolday"
	"github.com/andreicionca/motivare-absente/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExcuseRepository struct {
	excuse.Repository
	withTxFn func(tx *sql.Tx) excuse.Repository
	createFn func(ctx context.Context, e *excuse.Excuse) error
}

func (f *fakeExcuseRepository) WithTx(tx *sql.Tx) excuse.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeExcuseRepository) Create(ctx context.Context, e *excuse.Excuse) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
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

type excuseServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  excuse.Service
	repo     *fakeExcuseRepository
	holidays *fakeHolidays
}

func setupExcuseServiceTest(t *testing.T) *excuseServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeExcuseRepository{}
	holidays := &fakeHolidays{}
	svc := excuse.NewService(db, repo, holidays, 6, "motivari-scolare")

	return &excuseServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, holidays: holidays}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(v string) *string { return &v }

func validRequest(studentID string) excuse.SubmitExcuseRequest {
	return excuse.SubmitExcuseRequest{
		StudentID:   studentID,
		Category:    domain.ExcuseLongLeave,
		PeriodStart: "2024-03-04",
		PeriodEnd:   strPtr("2024-03-08"),
		EvidenceURL: "https://res.cloudinary.com/demo/image/upload/v17/motivari-scolare/cerere.jpg",
		SubmittedBy: "student",
	}
}

func TestExcuseService_Submit(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.NewString()
	student := domain.Principal{UserID: studentID, Role: domain.RoleStudent, StudentID: studentID, Class: "9A"}

	t.Run("long leave over a school week", func(t *testing.T) {
		deps := setupExcuseServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		var created *excuse.Excuse
		deps.repo.createFn = func(ctx context.Context, e *excuse.Excuse) error {
			created = e
			return nil
		}

		res, err := deps.service.Submit(ctx, student, validRequest(studentID))
		require.NoError(t, err)
		assert.Equal(t, 30, res.HoursDeducted)
		assert.Equal(t, domain.ExcusePending, res.Status)
		assert.Equal(t, string(domain.StageSubmitted), res.Stage)
		assert.Equal(t, "motivari-scolare/cerere", created.EvidencePublicID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("holidays reduce long leave hours", func(t *testing.T) {
		deps := setupExcuseServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		end := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
		deps.holidays.ranges = []schoolday.Range{{Start: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), End: &end}}

		res, err := deps.service.Submit(ctx, student, validRequest(studentID))
		require.NoError(t, err)
		assert.Equal(t, 12, res.HoursDeducted)
	})

	t.Run("medical excuse deducts nothing", func(t *testing.T) {
		deps := setupExcuseServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		req := validRequest(studentID)
		req.Category = domain.ExcuseMedical

		res, err := deps.service.Submit(ctx, student, req)
		require.NoError(t, err)
		assert.Equal(t, 0, res.HoursDeducted)
	})

	t.Run("parent submits for linked student", func(t *testing.T) {
		deps := setupExcuseServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		parent := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleParent, StudentID: studentID}
		req := validRequest(studentID)
		req.SubmittedBy = "parent"

		res, err := deps.service.Submit(ctx, parent, req)
		require.NoError(t, err)
		assert.Equal(t, "parent", res.SubmittedBy)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(r *excuse.SubmitExcuseRequest)
			want   error
		}{
			{"missing student", func(r *excuse.SubmitExcuseRequest) { r.StudentID = "" }, apperror.RequiredField("student_id")},
			{"missing category", func(r *excuse.SubmitExcuseRequest) { r.Category = "" }, apperror.RequiredField("category")},
			{"missing start", func(r *excuse.SubmitExcuseRequest) { r.PeriodStart = "" }, apperror.RequiredField("period_start")},
			{"missing evidence", func(r *excuse.SubmitExcuseRequest) { r.EvidenceURL = " " }, apperror.RequiredField("evidence_url")},
			{"missing submitter", func(r *excuse.SubmitExcuseRequest) { r.SubmittedBy = "" }, apperror.RequiredField("submitted_by")},
			{"bad student id", func(r *excuse.SubmitExcuseRequest) { r.StudentID = "42" }, excuseerrors.ErrInvalidStudentID},
			{"unknown category", func(r *excuse.SubmitExcuseRequest) { r.Category = "vacation" }, excuseerrors.ErrInvalidCategory},
			{"bad date", func(r *excuse.SubmitExcuseRequest) { r.PeriodStart = "04.03.2024" }, excuseerrors.ErrInvalidDateFormat},
			{"end before start", func(r *excuse.SubmitExcuseRequest) { r.PeriodEnd = strPtr("2024-03-01") }, excuseerrors.ErrInvalidDateRange},
			{"evidence not a url", func(r *excuse.SubmitExcuseRequest) { r.EvidenceURL = "cerere.jpg" }, excuseerrors.ErrInvalidEvidenceURL},
			{"submitter mismatch", func(r *excuse.SubmitExcuseRequest) { r.SubmittedBy = "parent" }, excuseerrors.ErrInvalidSubmitter},
			{"other student", func(r *excuse.SubmitExcuseRequest) { r.StudentID = uuid.NewString() }, excuseerrors.ErrNotOwnStudent},
			{"evidence not on the media host", func(r *excuse.SubmitExcuseRequest) { r.EvidenceURL = "https://example.com/cerere.jpg" }, excuseerrors.ErrEvidenceNotHosted},
			{"evidence outside the folder", func(r *excuse.SubmitExcuseRequest) {
				r.EvidenceURL = "https://res.cloudinary.com/demo/image/upload/v17/alt-proiect/logo.png"
			}, excuseerrors.ErrEvidenceOutsideFolder},
			{"public id of another asset", func(r *excuse.SubmitExcuseRequest) { r.EvidencePublicID = "motivari-scolare/victim" }, excuseerrors.ErrEvidencePublicIDMismatch},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				deps := setupExcuseServiceTest(t)
				deps.repo.createFn = func(ctx context.Context, e *excuse.Excuse) error {
					t.Fatal("create must not be called")
					return nil
				}
				req := validRequest(studentID)
				tc.mutate(&req)

				_, err := deps.service.Submit(ctx, student, req)
				assert.ErrorIs(t, err, tc.want)
				assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
			})
		}
	})

	t.Run("unknown student maps foreign key violation", func(t *testing.T) {
		deps := setupExcuseServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, e *excuse.Excuse) error {
			return &pgconn.PgError{Code: "23503", ConstraintName: "fk_excuse_records_student"}
		}

		_, err := deps.service.Submit(ctx, student, validRequest(studentID))
		assert.ErrorIs(t, err, excuseerrors.ErrStudentNotFound)
	})

	t.Run("matching public id is accepted", func(t *testing.T) {
		deps := setupExcuseServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		var created *excuse.Excuse
		deps.repo.createFn = func(ctx context.Context, e *excuse.Excuse) error {
			created = e
			return nil
		}
		req := validRequest(studentID)
		req.EvidencePublicID = "motivari-scolare/cerere"

		_, err := deps.service.Submit(ctx, student, req)
		require.NoError(t, err)
		assert.Equal(t, "motivari-scolare/cerere", created.EvidencePublicID)
	})

	t.Run("evidence attached twice maps unique violation", func(t *testing.T) {
		deps := setupExcuseServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, e *excuse.Excuse) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_excuses_evidence_public_id"}
		}

		_, err := deps.service.Submit(ctx, student, validRequest(studentID))
		assert.ErrorIs(t, err, excuseerrors.ErrEvidenceInUse)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("holiday lookup failure", func(t *testing.T) {
		deps := setupExcuseServiceTest(t)
		deps.holidays.err = errors.New("relation \"holidays\" does not exist")

		_, err := deps.service.Submit(ctx, student, validRequest(studentID))
		assert.EqualError(t, err, "relation \"holidays\" does not exist")
	})
}

// An image already on the media host stays there when the record cannot be
// stored: nothing besides the rolled back insert is attempted.
func TestExcuseService_Submit_FailedPersistLeavesEvidenceUnreleased(t *testing.T) {
	deps := setupExcuseServiceTest(t)
	studentID := uuid.NewString()
	expectTx(t, deps.sqlMock, false)
	deps.repo.createFn = func(ctx context.Context, e *excuse.Excuse) error {
		return errors.New("connection reset by peer")
	}

	_, err := deps.service.Submit(context.Background(),
		domain.Principal{UserID: studentID, Role: domain.RoleStudent, StudentID: studentID},
		validRequest(studentID),
	)

	assert.EqualError(t, err, "connection reset by peer")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
