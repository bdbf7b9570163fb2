package shortleave

import (
	"errors"

	shortleaveerrors "github.com/andreicionca/motivare-absente/internal/shortleave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgForeignKeyViolation = "23503"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shortleaveerrors.ErrShortLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return shortleaveerrors.ErrStudentNotFound
	}

	return err
}
