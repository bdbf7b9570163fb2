package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	FindOverlapping(ctx context.Context, from, to time.Time) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindOverlapping treats a missing or inverted end date as the start date.
func (r *repository) FindOverlapping(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("start_date <= ?", to).
		Where("GREATEST(start_date, COALESCE(end_date, start_date)) >= ?", from).
		Order("start_date ASC").
		Find(&holidays).Error
	return holidays, err
}
