package shortleave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=shortleave_repo.go -destination=mock/shortleave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *ShortLeave) error
	FindByID(ctx context.Context, id string) (*ShortLeave, error)
	FindByIDForUpdate(ctx context.Context, id string) (*ShortLeave, error)
	FindByIDsForUpdate(ctx context.Context, ids []string) ([]ShortLeave, error)
	FindByIDs(ctx context.Context, ids []string) ([]ShortLeave, error)
	ListByStudent(ctx context.Context, studentID string) ([]ShortLeave, error)
	ListByClass(ctx context.Context, class string) ([]ShortLeave, error)
	Update(ctx context.Context, l *ShortLeave) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn runs statements on the bound transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, l *ShortLeave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ShortLeave, error) {
	var l ShortLeave
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*ShortLeave, error) {
	var l ShortLeave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDsForUpdate(ctx context.Context, ids []string) ([]ShortLeave, error) {
	var list []ShortLeave
	if len(ids) == 0 {
		return list, nil
	}
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&list).Error
	return list, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]ShortLeave, error) {
	var list []ShortLeave
	if len(ids) == 0 {
		return list, nil
	}
	err := r.conn(ctx).
		Where("id IN ?", ids).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListByStudent(ctx context.Context, studentID string) ([]ShortLeave, error) {
	var list []ShortLeave
	err := r.conn(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListByClass(ctx context.Context, class string) ([]ShortLeave, error) {
	var list []ShortLeave
	err := r.conn(ctx).
		Joins("JOIN students ON students.id = short_leave_requests.student_id").
		Where("students.class = ?", class).
		Order("short_leave_requests.created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, l *ShortLeave) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&ShortLeave{}, "id = ?", id).Error
}
