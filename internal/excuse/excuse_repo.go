package excuse

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=excuse_repo.go -destination=mock/excuse_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Excuse) error
	FindByID(ctx context.Context, id string) (*Excuse, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Excuse, error)
	FindByIDsForUpdate(ctx context.Context, ids []string) ([]Excuse, error)
	FindByIDs(ctx context.Context, ids []string) ([]Excuse, error)
	ListByStudent(ctx context.Context, studentID string) ([]Excuse, error)
	ListByClass(ctx context.Context, class string) ([]Excuse, error)
	Update(ctx context.Context, e *Excuse) error
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

func (r *repository) Create(ctx context.Context, e *Excuse) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Excuse, error) {
	var e Excuse
	if err := r.conn(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Excuse, error) {
	var e Excuse
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByIDsForUpdate(ctx context.Context, ids []string) ([]Excuse, error) {
	var list []Excuse
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

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Excuse, error) {
	var list []Excuse
	if len(ids) == 0 {
		return list, nil
	}
	err := r.conn(ctx).
		Where("id IN ?", ids).
		Order("period_start ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListByStudent(ctx context.Context, studentID string) ([]Excuse, error) {
	var list []Excuse
	err := r.conn(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListByClass(ctx context.Context, class string) ([]Excuse, error) {
	var list []Excuse
	err := r.conn(ctx).
		Joins("JOIN students ON students.id = excuse_records.student_id").
		Where("students.class = ?", class).
		Order("excuse_records.created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, e *Excuse) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Excuse{}, "id = ?", id).Error
}
