package request

import (
	"errors"

	requesterrors "github.com/andreicionca/motivare-absente/internal/request/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return requesterrors.ErrRecordNotFound
	}
	return err
}
