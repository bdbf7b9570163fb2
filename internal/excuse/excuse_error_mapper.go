package excuse

import (
	"errors"

	excuseerrors "github.com/andreicionca/motivare-absente/internal/excuse/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return excuseerrors.ErrExcuseNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return excuseerrors.ErrStudentNotFound
		case pgUniqueViolation:
			return excuseerrors.ErrEvidenceInUse
		}
	}

	return err
}
