package client

import (
	"context"

	"github.com/andreicionca/motivare-absente/internal/auth"
	"github.com/andreicionca/motivare-absente/internal/client/api"
	"github.com/andreicionca/motivare-absente/internal/domain"
)

// AppState is the signed-in session with the controller of its role.
type AppState struct {
	User    domain.User
	Student *StudentController
	Teacher *TeacherController
}

// Start signs in and loads the lists of the user's view.
func Start(ctx context.Context, c *api.Client, req auth.AuthenticateRequest) (*AppState, error) {
	res, err := c.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	return Resume(ctx, c, res.User)
}

// Resume builds the state for a user whose token the client already holds.
func Resume(ctx context.Context, c *api.Client, res auth.UserResponse) (*AppState, error) {
	user, err := DecodeUser(res)
	if err != nil {
		return nil, err
	}

	st := &AppState{User: user}
	switch v := user.(type) {
	case domain.Teacher:
		st.Teacher = NewTeacherController(c, v)
		return st, st.Teacher.Load(ctx)
	default:
		if st.Student, err = NewStudentController(c, v); err != nil {
			return nil, err
		}
		return st, st.Student.Load(ctx)
	}
}
