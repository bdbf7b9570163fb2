package school

import (
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"

	"github.com/google/uuid"
)

type Student struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName        string    `gorm:"type:varchar(100);not null"`
	LastName         string    `gorm:"type:varchar(100);not null;index:idx_students_last_name"`
	Class            string    `gorm:"type:varchar(20);not null;index:idx_students_class"`
	PersonalCodeHash string    `gorm:"type:varchar(100);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Parent struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID        uuid.UUID `gorm:"type:uuid;not null;index:idx_parents_student"`
	FirstName        string    `gorm:"type:varchar(100);not null"`
	LastName         string    `gorm:"type:varchar(100);not null;index:idx_parents_last_name"`
	PersonalCodeHash string    `gorm:"type:varchar(100);not null"`

	Student *Student `gorm:"foreignKey:StudentID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Teacher is the homeroom teacher of exactly one class.
type Teacher struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	Class        string    `gorm:"type:varchar(20);not null;uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Student) ToDomain() domain.Student {
	return domain.Student{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName, Class: s.Class}
}

func (p Parent) ToDomain() domain.Parent {
	d := domain.Parent{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
	if p.Student != nil {
		d.Student = p.Student.ToDomain()
	} else {
		d.Student = domain.Student{ID: p.StudentID}
	}
	return d
}

func (t Teacher) ToDomain() domain.Teacher {
	return domain.Teacher{ID: t.ID, Email: t.Email, FirstName: t.FirstName, LastName: t.LastName, Class: t.Class}
}

// FullName is the "Last First" form used by the records system.
func (s Student) FullName() string {
	return s.LastName + " " + s.FirstName
}
