package client

import (
	"errors"
	"fmt"

	"github.com/andreicionca/motivare-absente/internal/auth"
	"github.com/andreicionca/motivare-absente/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrUnknownRole    = errors.New("unknown user role")
	ErrNotStudentView = errors.New("only a student or a parent has a student view")
	errMissingStudent = errors.New("missing student id")
)

// DecodeUser lifts the flat user payload into its role variant, so role
// specific fields are read only from the variant that carries them.
func DecodeUser(res auth.UserResponse) (domain.User, error) {
	role, ok := domain.ParseRole(res.Role)
	if !ok {
		return nil, fmt.Errorf("client: %w %q", ErrUnknownRole, res.Role)
	}
	id, err := uuid.Parse(res.ID)
	if err != nil {
		return nil, fmt.Errorf("client: user id: %w", err)
	}

	switch role {
	case domain.RoleStudent:
		return domain.Student{ID: id, FirstName: res.FirstName, LastName: res.LastName, Class: res.Class}, nil
	case domain.RoleParent:
		if res.StudentID == "" {
			return nil, fmt.Errorf("client: parent: %w", errMissingStudent)
		}
		studentID, err := uuid.Parse(res.StudentID)
		if err != nil {
			return nil, fmt.Errorf("client: student id: %w", err)
		}
		return domain.Parent{
			ID:        id,
			FirstName: res.FirstName,
			LastName:  res.LastName,
			Student:   domain.Student{ID: studentID, Class: res.Class},
		}, nil
	default:
		return domain.Teacher{ID: id, Email: res.Email, FirstName: res.FirstName, LastName: res.LastName, Class: res.Class}, nil
	}
}

// studentOf is the student whose requests the view shows.
func studentOf(u domain.User) (domain.Student, error) {
	switch v := u.(type) {
	case domain.Student:
		return v, nil
	case domain.Parent:
		return v.Student, nil
	}
	return domain.Student{}, ErrNotStudentView
}
