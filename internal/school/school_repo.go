package school

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=school_repo.go -destination=mock/school_repo_mock.go -package=mock
type Repository interface {
	FindStudentsByLastName(ctx context.Context, lastName string) ([]Student, error)
	FindParentsByLastName(ctx context.Context, lastName string) ([]Parent, error)
	FindTeacherByEmail(ctx context.Context, email string) (*Teacher, error)
	FindStudentByID(ctx context.Context, id string) (*Student, error)
	ListStudentsByClass(ctx context.Context, class string) ([]Student, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindStudentsByLastName(ctx context.Context, lastName string) ([]Student, error) {
	var students []Student
	err := r.db.WithContext(ctx).
		Where("LOWER(last_name) = LOWER(?)", lastName).
		Find(&students).Error
	return students, err
}

func (r *repository) FindParentsByLastName(ctx context.Context, lastName string) ([]Parent, error) {
	var parents []Parent
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("LOWER(last_name) = LOWER(?)", lastName).
		Find(&parents).Error
	return parents, err
}

func (r *repository) FindTeacherByEmail(ctx context.Context, email string) (*Teacher, error) {
	var t Teacher
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindStudentByID(ctx context.Context, id string) (*Student, error) {
	var s Student
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListStudentsByClass(ctx context.Context, class string) ([]Student, error) {
	var students []Student
	err := r.db.WithContext(ctx).
		Where("class = ?", class).
		Order("last_name ASC, first_name ASC").
		Find(&students).Error
	return students, err
}
