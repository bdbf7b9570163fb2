package domain

import "github.com/google/uuid"

type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
)

func ParseRole(v string) (Role, bool) {
	switch Role(v) {
	case RoleStudent, RoleParent, RoleTeacher:
		return Role(v), true
	}
	return "", false
}

// User is one of Student, Parent or Teacher. Role specific fields live
// only on the matching variant.
type User interface {
	Role() Role
	UserID() uuid.UUID
	DisplayName() string
	isUser()
}

type Student struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Class     string    `json:"class"`
}

type Parent struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Student   Student   `json:"student"`
}

type Teacher struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Class     string    `json:"class"`
}

func (Student) Role() Role            { return RoleStudent }
func (s Student) UserID() uuid.UUID   { return s.ID }
func (s Student) DisplayName() string { return s.LastName + " " + s.FirstName }
func (Student) isUser()               {}

func (Parent) Role() Role            { return RoleParent }
func (p Parent) UserID() uuid.UUID   { return p.ID }
func (p Parent) DisplayName() string { return p.LastName + " " + p.FirstName }
func (Parent) isUser()               {}

func (Teacher) Role() Role            { return RoleTeacher }
func (t Teacher) UserID() uuid.UUID   { return t.ID }
func (t Teacher) DisplayName() string { return t.LastName + " " + t.FirstName }
func (Teacher) isUser()               {}

// Principal is what an access token carries about its holder.
type Principal struct {
	UserID    string `json:"user_id"`
	Role      Role   `json:"role"`
	StudentID string `json:"student_id,omitempty"`
	Class     string `json:"class,omitempty"`
}

// PrincipalOf derives the token subject from a signed-in user.
func PrincipalOf(u User) Principal {
	p := Principal{UserID: u.UserID().String(), Role: u.Role()}
	switch v := u.(type) {
	case Student:
		p.StudentID = v.ID.String()
		p.Class = v.Class
	case Parent:
		p.StudentID = v.Student.ID.String()
		p.Class = v.Student.Class
	case Teacher:
		p.Class = v.Class
	}
	return p
}

// ActsFor reports whether the principal may act on behalf of the student.
func (p Principal) ActsFor(studentID string) bool {
	return (p.Role == RoleStudent || p.Role == RoleParent) && p.StudentID == studentID
}
