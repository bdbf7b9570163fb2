package excuse_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/andreicionca/motivare-absente/internal/excuse"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (excuse.Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return excuse.NewRepository(gdb), db, mock
}

func TestRepository_FindByIDsForUpdate(t *testing.T) {
	repo, db, mock := setupRepo(t)
	a, b := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "excuse_records" WHERE id IN ($1,$2) ORDER BY id FOR UPDATE`)).
		WithArgs(a.String(), b.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "period_start"}).
			AddRow(a, "approved", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)).
			AddRow(b, "finalized", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	list, err := repo.WithTx(tx).FindByIDsForUpdate(context.Background(), []string{a.String(), b.String()})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Len(t, list, 2)
	assert.Equal(t, "finalized", list[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByIDsForUpdate_Empty(t *testing.T) {
	repo, _, mock := setupRepo(t)

	list, err := repo.FindByIDsForUpdate(context.Background(), nil)

	assert.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByClass(t *testing.T) {
	repo, _, mock := setupRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN students ON students.id = excuse_records.student_id WHERE students.class = $1 ORDER BY excuse_records.created_at DESC`)).
		WithArgs("9A").
		WillReturnRows(sqlmock.NewRows([]string{"id", "category", "status"}).AddRow(id, "medical", "pending"))

	list, err := repo.ListByClass(context.Background(), "9A")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo, _, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "excuse_records" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	e, err := repo.FindByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, e)
}
